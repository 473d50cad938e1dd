package main

import (
	"errors"
	"fmt"

	"xdao.co/aiorigin/manifest"
	"xdao.co/aiorigin/report"
)

const (
	acceptAny       = "any"
	acceptDocuments = "documents"
)

// acceptPolicy returns the CAS Put filter for --accept. A nil filter stores
// anything.
func acceptPolicy(name string) (func([]byte) error, error) {
	switch name {
	case acceptAny:
		return nil, nil
	case acceptDocuments:
		return isDocument, nil
	default:
		return nil, fmt.Errorf("invalid --accept %q (want %s|%s)", name, acceptAny, acceptDocuments)
	}
}

// isDocument admits manifest stores that name at least one manifest, and
// canonical classification reports.
func isDocument(b []byte) error {
	if _, err := report.Parse(b); err == nil {
		return nil
	}
	s, err := manifest.Parse(b)
	if err != nil {
		return err
	}
	if s.ActiveManifest == "" && len(s.Manifests) == 0 {
		return errors.New("manifest store is empty")
	}
	return nil
}
