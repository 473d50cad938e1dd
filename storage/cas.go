// Package storage provides content-addressed storage for manifest-store
// documents and classification reports.
//
// Classification is requested either with the document bytes inline or with
// the CID of a document previously Put into a CAS. Backends are linked at
// build time and selected through casregistry / casconfig.
package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable store.
//
// Contract:
//   - Put is idempotent and returns cidutil.Sum of the bytes written.
//   - Stored objects are immutable.
//   - Get returns ErrNotFound when the CID is absent and ErrCIDMismatch when
//     the stored bytes no longer hash to the CID.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
