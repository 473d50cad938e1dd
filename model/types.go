package model

// BlobRef refers to a manifest-store document inline or by CID.
// Exactly one of CID or Bytes must be set.
//
// JSON note: Bytes are encoded as base64 by encoding/json.
type BlobRef struct {
	CID   string `json:"cid,omitempty"`
	Bytes []byte `json:"bytes,omitempty"`
}

// ComplianceMode selects how an unknown classification is reported.
type ComplianceMode string

const (
	CompliancePermissive ComplianceMode = "permissive"
	ComplianceStrict     ComplianceMode = "strict"
)

type ClassifyRequest struct {
	Store      BlobRef        `json:"store"`
	Compliance ComplianceMode `json:"compliance,omitempty"`
}

type Generator struct {
	Name       string `json:"name,omitempty"`
	Source     string `json:"source,omitempty"`
	ManifestID string `json:"manifestId"`
}

// ClassifyResponse is the classification of one manifest store plus the
// display strings derived from it.
type ClassifyResponse struct {
	StoreCID       string     `json:"storeCID"`
	ActiveManifest string     `json:"activeManifest,omitempty"`
	Classification string     `json:"classification"`
	Label          string     `json:"label"`
	AIGenerated    bool       `json:"aiGenerated"`
	Generator      *Generator `json:"generator,omitempty"`
	Vendor         string     `json:"vendor,omitempty"`
}
