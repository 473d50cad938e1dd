package manifest

import "errors"

// ErrMalformed reports a document whose top-level JSON is not a manifest store.
var ErrMalformed = errors.New("manifest: malformed manifest store")
