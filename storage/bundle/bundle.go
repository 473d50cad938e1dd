// Package bundle moves manifest-store documents and classification reports
// between CAS instances as deterministic TAR archives.
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/report"
	"xdao.co/aiorigin/storage"
)

// FormatVersion is the current index.json schema version.
const FormatVersion = 1

// Kinds recorded in index.json. They are informational; Import never
// trusts them.
const (
	KindManifestStore = "manifest-store"
	KindReport        = "report"
	KindBlob          = "blob"
)

var epoch = time.Unix(0, 0).UTC()

type ExportOptions struct {
	// Labels maps names (typically file names) to exported CIDs.
	Labels map[string]cid.Cid
	// IncludeIndex adds index.json describing every block.
	IncludeIndex bool
}

// Export writes the objects named by ids as "blocks/<cid>" entries.
//
// Output bytes depend only on the set of ids and their content: entries are
// sorted and TAR headers are normalized. Every object is re-hashed before it
// is written.
func Export(w io.Writer, cas storage.CAS, ids []cid.Cid, opts ExportOptions) error {
	if cas == nil {
		return fmt.Errorf("bundle: nil CAS")
	}

	uniq := make(map[string]cid.Cid, len(ids))
	for _, id := range ids {
		if !id.Defined() {
			return storage.ErrInvalidCID
		}
		uniq[id.String()] = id
	}
	names := make([]string, 0, len(uniq))
	for s := range uniq {
		names = append(names, s)
	}
	sort.Strings(names)

	idx := Index{Version: FormatVersion, CIDCodec: "raw", Multihash: "sha2-256"}
	tw := tar.NewWriter(w)
	fail := func(err error) error {
		_ = tw.Close()
		return err
	}

	for _, s := range names {
		id := uniq[s]
		b, err := cas.Get(id)
		if err != nil {
			return fail(err)
		}
		if !cidutil.Matches(id, b) {
			return fail(storage.ErrCIDMismatch)
		}
		if err := writeFile(tw, "blocks/"+s, b); err != nil {
			return fail(err)
		}
		idx.Blocks = append(idx.Blocks, Block{CID: s, Size: len(b), Kind: kindOf(b)})
	}

	if !opts.IncludeIndex {
		return tw.Close()
	}

	labelNames := make([]string, 0, len(opts.Labels))
	for k := range opts.Labels {
		labelNames = append(labelNames, k)
	}
	sort.Strings(labelNames)
	for _, k := range labelNames {
		if k == "" {
			return fail(fmt.Errorf("bundle: empty label name"))
		}
		v := opts.Labels[k]
		if _, ok := uniq[v.String()]; !ok || !v.Defined() {
			return fail(fmt.Errorf("bundle: label %q refers to a CID outside the bundle", k))
		}
		idx.Labels = append(idx.Labels, Label{Name: k, CID: v.String()})
	}

	b, err := json.Marshal(idx)
	if err != nil {
		return fail(err)
	}
	if err := writeFile(tw, "index.json", append(b, '\n')); err != nil {
		return fail(err)
	}
	return tw.Close()
}

// kindOf guesses what an object is for the index.
func kindOf(b []byte) string {
	if bytes.HasPrefix(b, []byte(report.Preamble+"\n")) {
		return KindReport
	}
	var sniff struct {
		Manifests map[string]json.RawMessage `json:"manifests"`
	}
	if json.Unmarshal(b, &sniff) == nil && sniff.Manifests != nil {
		return KindManifestStore
	}
	return KindBlob
}

type ImportOptions struct {
	// IgnoreUnknown skips entries other than blocks and index.json instead
	// of failing.
	IgnoreUnknown bool
}

// Import stores every block of the bundle in cas and returns their CIDs in
// archive order. Each block must hash to the CID in its entry name.
func Import(r io.Reader, cas storage.CAS, opts ImportOptions) ([]cid.Cid, error) {
	if cas == nil {
		return nil, fmt.Errorf("bundle: nil CAS")
	}

	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var imported []cid.Cid

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return imported, nil
		}
		if err != nil {
			return imported, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return imported, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return imported, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}
		if name == "index.json" {
			continue
		}
		if !strings.HasPrefix(name, "blocks/") {
			if opts.IgnoreUnknown {
				continue
			}
			return imported, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		id, err := cidutil.Decode(strings.TrimPrefix(name, "blocks/"))
		if err != nil {
			return imported, storage.ErrInvalidCID
		}
		if _, dup := seen[id.String()]; dup {
			return imported, fmt.Errorf("bundle: duplicate block entry: %s", id)
		}
		seen[id.String()] = struct{}{}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return imported, err
		}
		if !cidutil.Matches(id, payload) {
			return imported, storage.ErrCIDMismatch
		}
		putID, err := cas.Put(payload)
		if err != nil {
			return imported, err
		}
		if !putID.Equals(id) {
			return imported, storage.ErrCIDMismatch
		}
		imported = append(imported, id)
	}
}

// ReadIndex returns the index.json of a bundle, or nil if it has none.
func ReadIndex(r io.Reader) (*Index, error) {
	tr := tar.NewReader(r)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if cleanTarPath(h.Name) != "index.json" {
			continue
		}
		var idx Index
		if err := json.NewDecoder(tr).Decode(&idx); err != nil {
			return nil, fmt.Errorf("bundle: index.json: %w", err)
		}
		return &idx, nil
	}
}

// Index describes a bundle's contents.
type Index struct {
	Version   int          `json:"version"`
	CIDCodec  string       `json:"cidCodec"`
	Multihash string       `json:"multihash"`
	Blocks    []Block `json:"blocks"`
	Labels    []Label `json:"labels,omitempty"`
}

type Block struct {
	CID  string `json:"cid"`
	Size int    `json:"size"`
	Kind string `json:"kind"`
}

type Label struct {
	Name string `json:"name"`
	CID  string `json:"cid"`
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

// cleanTarPath normalizes separators and rejects empty, "." and ".."
// components.
func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
