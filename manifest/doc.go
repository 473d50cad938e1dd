// Package manifest holds the in-memory form of a parsed content-credentials
// (C2PA) manifest store.
//
// Values in this package are produced once by Parse and are read-only
// afterwards. Assertions are decoded into a closed set of variants at
// ingestion time (ActionsV2 or Other), so consumers switch on the variant
// instead of re-checking payload shapes.
//
// This package does not validate signatures or the binary JUMBF encoding; it
// only reads the JSON projection emitted by c2pa tooling.
package manifest
