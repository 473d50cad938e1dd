package manifest

const (
	// LabelActionsV2 is the only assertion label interpreted by this module.
	LabelActionsV2 = "c2pa.actions.v2"

	// TrainedAlgorithmicMedia is the IPTC digital source type for content
	// produced by a trained generative model.
	TrainedAlgorithmicMedia = "http://cv.iptc.org/newscodes/digitalsourcetype/trainedAlgorithmicMedia"
)

// Store is a manifest store: a set of manifests keyed by identifier plus the
// identifier of the manifest describing the asset being inspected.
//
// ActiveManifest is empty when the store names no active manifest.
type Store struct {
	ActiveManifest string
	Manifests      map[string]*Manifest
}

// Lookup returns the manifest for id. It is safe on a nil Store.
func (s *Store) Lookup(id string) (*Manifest, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	m, ok := s.Manifests[id]
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Manifest is one node of the provenance graph.
type Manifest struct {
	Label          string
	Title          string
	Format         string
	ClaimGenerator string

	Assertions         []Assertion
	Ingredients        []Ingredient
	ClaimGeneratorInfo []ClaimGenerator
	SignatureInfo      *SignatureInfo
}

// ClaimGenerator describes a tool that claims to have produced a manifest.
type ClaimGenerator struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// SignatureInfo summarizes the claim signature of a manifest.
type SignatureInfo struct {
	Issuer string `json:"issuer,omitempty"`
	Alg    string `json:"alg,omitempty"`
	Time   string `json:"time,omitempty"`
}

// Ingredient references the manifest describing an input asset.
// ActiveManifest is empty when the ingredient carries no provenance of its own.
type Ingredient struct {
	Title          string `json:"title,omitempty"`
	Relationship   string `json:"relationship,omitempty"`
	ActiveManifest string `json:"active_manifest,omitempty"`
}

// Assertion is implemented by ActionsV2 and Other only.
type Assertion interface {
	AssertionLabel() string
	isAssertion()
}

// ActionsV2 is a decoded c2pa.actions.v2 assertion.
type ActionsV2 struct {
	Actions []Action
}

func (ActionsV2) AssertionLabel() string { return LabelActionsV2 }
func (ActionsV2) isAssertion()           {}

// Other is any assertion this module does not interpret, including a
// c2pa.actions.v2 assertion whose payload did not have the expected shape.
type Other struct {
	Label string
	Data  []byte
}

func (o Other) AssertionLabel() string { return o.Label }
func (Other) isAssertion()             {}

// Action is one entry of an actions assertion.
type Action struct {
	Action            string
	DigitalSourceType string
	Description       string
	SoftwareAgent     *SoftwareAgent
}

// SoftwareAgent is the tool recorded as performing an action.
type SoftwareAgent struct {
	Name    string
	Version string
}

// AgentName returns the software agent name, or "" when there is none.
func (a Action) AgentName() string {
	if a.SoftwareAgent == nil {
		return ""
	}
	return a.SoftwareAgent.Name
}
