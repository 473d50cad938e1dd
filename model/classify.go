package model

import (
	"errors"

	"github.com/ipfs/go-cid"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/compliance"
	"xdao.co/aiorigin/manifest"
	"xdao.co/aiorigin/origin"
	"xdao.co/aiorigin/storage"
)

// ClassifyOptions supplies the CAS used to hydrate stores referenced by CID.
// At most one of CAS and CASAdapters may be set.
type ClassifyOptions struct {
	CAS         storage.CAS
	CASAdapters []storage.CAS
}

// Classify hydrates the requested manifest store (through the CAS when the
// request names a CID), classifies it and formats the result.
//
// In strict compliance an "unknown" classification is returned as an
// UNRESOLVED error instead of a response.
func Classify(req ClassifyRequest, opts ClassifyOptions) (*ClassifyResponse, error) {
	mode, err := toCompliance(req.Compliance)
	if err != nil {
		return nil, err
	}
	cas, err := casFromOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, id, err := hydrate(req.Store, cas)
	if err != nil {
		return nil, err
	}
	store, err := manifest.Parse(doc)
	if err != nil {
		return nil, mapErr(err)
	}

	resp := FromResult(id.String(), store, origin.Classify(store))
	if mode == compliance.Strict && resp.Classification == string(origin.Unknown) {
		return nil, NewError(ErrUnresolved, "provenance of store "+resp.StoreCID+" could not be determined")
	}
	return resp, nil
}

// ClassifyDocument classifies an inline manifest-store document. An empty
// document is a MALFORMED_MANIFEST error.
func ClassifyDocument(doc []byte, mode ComplianceMode, opts ClassifyOptions) (*ClassifyResponse, error) {
	if len(doc) == 0 {
		return nil, NewError(ErrMalformedManifest, "empty document")
	}
	return Classify(ClassifyRequest{Store: BlobRef{Bytes: doc}, Compliance: mode}, opts)
}

// FromResult converts an origin.Result into its boundary form, adding the
// display label and the normalized vendor.
func FromResult(storeCID string, store *manifest.Store, r origin.Result) *ClassifyResponse {
	resp := &ClassifyResponse{
		StoreCID:       storeCID,
		Classification: string(r.Classification),
		Label:          r.Classification.Label(),
		AIGenerated:    r.AIGenerated,
	}
	if store != nil {
		resp.ActiveManifest = store.ActiveManifest
	}
	if r.Generator != nil {
		resp.Generator = &Generator{
			Name:       r.Generator.Name,
			Source:     string(r.Generator.Source),
			ManifestID: r.Generator.ManifestID,
		}
		resp.Vendor = r.Generator.Vendor()
	}
	return resp
}

func casFromOptions(opts ClassifyOptions) (storage.CAS, error) {
	if opts.CAS != nil && len(opts.CASAdapters) > 0 {
		return nil, NewError(ErrInvalidRequest, "specify either CAS or CASAdapters, not both")
	}
	if opts.CAS != nil {
		return opts.CAS, nil
	}
	if len(opts.CASAdapters) > 0 {
		return storage.MultiCAS{Adapters: opts.CASAdapters}, nil
	}
	return nil, nil
}

func hydrate(ref BlobRef, cas storage.CAS) ([]byte, cid.Cid, error) {
	if len(ref.Bytes) > 0 && ref.CID != "" {
		return nil, cid.Undef, NewError(ErrInvalidRequest, "store ref has both bytes and cid")
	}
	if ref.Bytes != nil && len(ref.Bytes) == 0 && ref.CID == "" {
		return nil, cid.Undef, NewError(ErrMalformedManifest, "empty document")
	}
	if len(ref.Bytes) > 0 {
		id, err := cidutil.Sum(ref.Bytes)
		if err != nil {
			return nil, cid.Undef, NewError(ErrInternal, err.Error())
		}
		return ref.Bytes, id, nil
	}
	if ref.CID == "" {
		return nil, cid.Undef, NewError(ErrInvalidRequest, "store ref missing bytes/cid")
	}
	id, err := cidutil.Decode(ref.CID)
	if err != nil {
		return nil, cid.Undef, NewError(ErrInvalidCID, "invalid cid")
	}
	if cas == nil {
		return nil, cid.Undef, NewError(ErrMissingCAS, "a CAS is required to hydrate "+ref.CID)
	}
	b, err := cas.Get(id)
	if err != nil {
		return nil, cid.Undef, mapErr(err)
	}
	if !cidutil.Matches(id, b) {
		return nil, cid.Undef, NewError(ErrCIDMismatch, storage.ErrCIDMismatch.Error())
	}
	return b, id, nil
}

func toCompliance(m ComplianceMode) (compliance.ComplianceMode, error) {
	mode, err := compliance.ParseMode(string(m))
	if err != nil {
		return 0, NewError(ErrInvalidRequest, "invalid compliance mode")
	}
	return mode, nil
}

func asCoded(err error) (*CodedError, bool) {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := asCoded(err); ok {
		return ce
	}
	switch {
	case errors.Is(err, manifest.ErrMalformed):
		return NewError(ErrMalformedManifest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return NewError(ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrCIDMismatch):
		return NewError(ErrCIDMismatch, err.Error())
	case errors.Is(err, storage.ErrInvalidCID):
		return NewError(ErrInvalidCID, err.Error())
	default:
		return NewError(ErrInternal, err.Error())
	}
}
