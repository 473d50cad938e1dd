package report

import (
	"fmt"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/model"
)

// Document is a canonical report and the CID derived from its bytes.
type Document struct {
	Bytes []byte
	CID   string
}

// CID returns the CIDv1 (raw + sha2-256) of canonical report bytes.
func CID(reportBytes []byte) (string, error) {
	canon, err := Canonicalize(reportBytes)
	if err != nil {
		return "", fmt.Errorf("canonical report required: %w", err)
	}
	return cidutil.String(canon), nil
}

// RenderDocument renders resp and returns the canonical bytes with their CID.
func RenderDocument(resp *model.ClassifyResponse, opts RenderOptions) (*Document, error) {
	b, err := Render(resp, opts)
	if err != nil {
		return nil, err
	}
	id, err := CID(b)
	if err != nil {
		return nil, err
	}
	return &Document{Bytes: b, CID: id}, nil
}
