// Package report renders classification results as canonical, CID-addressed
// text documents that can be archived and re-verified.
package report

import (
	"crypto/ed25519"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/aiorigin/keys"
	"xdao.co/aiorigin/model"
)

const (
	Preamble  = "-----BEGIN XDAO AI ORIGIN REPORT-----"
	Postamble = "-----END XDAO AI ORIGIN REPORT-----"

	SpecID = "xdao-aiorigin-report-1"
)

var sectionOrder = []string{"META", "INPUTS", "RESULT", "GENERATOR", "CRYPTO"}

const signaturePlaceholder = "Signature: 0"

type RenderOptions struct {
	ReporterID  string
	GeneratedAt time.Time // informational only; zero means omit

	// At most one signing key may be set. Ed25519 signs sha256(scope);
	// Dilithium3 signs HashAlg(scope) with HashAlg defaulting to sha3-256.
	PrivateKey    ed25519.PrivateKey
	Dilithium3Key *mode3.PrivateKey
	HashAlg       string
}

// Render produces a canonical report for resp. Sections are always present
// and lines within a section are sorted. If a signing key is set, CRYPTO is
// populated and the signature covers the document minus its Signature line.
func Render(resp *model.ClassifyResponse, opts RenderOptions) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("report: nil response")
	}
	if len(opts.PrivateKey) > 0 && opts.Dilithium3Key != nil {
		return nil, errors.New("report: set either PrivateKey or Dilithium3Key, not both")
	}
	reporterID := opts.ReporterID
	if reporterID == "" {
		reporterID = "xdao-aiorigin-reference"
	}

	meta := []string{
		field("Reporter-ID", reporterID),
		field("Spec", SpecID),
		field("Version", "1"),
	}
	if !opts.GeneratedAt.IsZero() {
		meta = append(meta, field("Generated-At", opts.GeneratedAt.UTC().Format(time.RFC3339)))
	}

	inputs := []string{field("Store-CID", resp.StoreCID)}
	inputs = append(inputs, field("Active-Manifest", resp.ActiveManifest))

	result := []string{
		field("AI-Generated", strconv.FormatBool(resp.AIGenerated)),
		field("Classification", resp.Classification),
		field("Label", resp.Label),
	}

	var generator []string
	if g := resp.Generator; g != nil {
		generator = append(generator,
			field("Manifest-ID", g.ManifestID),
			field("Name", g.Name),
			field("Source", g.Source),
			field("Vendor", resp.Vendor),
		)
	}

	var crypto []string
	var sign func(scope []byte) (string, error)
	switch {
	case len(opts.PrivateKey) > 0:
		if len(opts.PrivateKey) != ed25519.PrivateKeySize {
			return nil, errors.New("report: invalid ed25519 private key")
		}
		signerKey, err := keys.SignerKeyFromPublicKey(opts.PrivateKey.Public().(ed25519.PublicKey))
		if err != nil {
			return nil, err
		}
		crypto = []string{"Hash-Alg: sha256", "Signature-Alg: ed25519", "Signer-Key: " + signerKey, signaturePlaceholder}
		sign = func(scope []byte) (string, error) {
			return keys.SignEd25519SHA256(scope, opts.PrivateKey), nil
		}
	case opts.Dilithium3Key != nil:
		hashAlg := opts.HashAlg
		if hashAlg == "" {
			hashAlg = "sha3-256"
		}
		if _, err := keys.Digest(hashAlg, nil); err != nil {
			return nil, err
		}
		pub, ok := opts.Dilithium3Key.Public().(*mode3.PublicKey)
		if !ok {
			return nil, errors.New("report: invalid dilithium3 private key")
		}
		signerKey, err := keys.Dilithium3SignerKey(pub)
		if err != nil {
			return nil, err
		}
		crypto = []string{"Hash-Alg: " + hashAlg, "Signature-Alg: dilithium3", "Signer-Key: " + signerKey, signaturePlaceholder}
		sign = func(scope []byte) (string, error) {
			return keys.SignDilithium3(scope, hashAlg, opts.Dilithium3Key)
		}
	}

	var sb strings.Builder
	sb.WriteString(Preamble)
	sb.WriteString("\n")
	for i, lines := range [][]string{meta, inputs, result, generator, crypto} {
		writeSection(&sb, sectionOrder[i], lines)
	}
	sb.WriteString(Postamble)
	sb.WriteString("\n")
	out := []byte(sb.String())

	if sign == nil {
		return out, nil
	}
	scope, err := signatureScope(out)
	if err != nil {
		return nil, err
	}
	sig, err := sign(scope)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Replace(string(out), signaturePlaceholder, "Signature: "+sig, 1)), nil
}

func writeSection(sb *strings.Builder, name string, lines []string) {
	sb.WriteString(name)
	sb.WriteString("\n")
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	sort.Strings(kept)
	for _, l := range kept {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// field renders "Key: value", or "" when value is empty after cleaning.
func field(key, value string) string {
	value = clean(value)
	if value == "" {
		return ""
	}
	return key + ": " + value
}

// clean folds control characters to spaces and trims, so manifest-supplied
// names cannot break the line format.
func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func signatureScope(doc []byte) ([]byte, error) {
	lines := strings.Split(string(doc), "\n")
	out := make([]string, 0, len(lines))
	removed := false
	for _, l := range lines {
		if strings.HasPrefix(l, "Signature: ") {
			if removed {
				return nil, errors.New("multiple Signature lines")
			}
			removed = true
			continue
		}
		out = append(out, l)
	}
	if !removed {
		return nil, errors.New("missing Signature line")
	}
	return []byte(strings.Join(out, "\n")), nil
}
