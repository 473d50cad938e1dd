package origin

import "xdao.co/aiorigin/manifest"

// Source names the evidence a Generator was attributed from.
type Source string

const (
	SourceSoftwareAgent  Source = "softwareAgent"
	SourceClaimGenerator Source = "claim_generator"
	SourceSignature      Source = "signature"
)

// Generator identifies the tool believed to have produced a manifest.
// Name and Source are empty when no evidence was found.
type Generator struct {
	Name       string
	Source     Source
	ManifestID string
}

// Vendor returns the canonical vendor for the generator name.
func (g *Generator) Vendor() string {
	if g == nil {
		return ""
	}
	return NormalizeVendor(g.Name)
}

// ExtractGenerator attributes manifest m, identified by id.
//
// Evidence is taken in this order, first match wins: the first software agent
// name on any actions-v2 action, the first named claim generator, then the
// signature issuer.
func ExtractGenerator(m *manifest.Manifest, id string) Generator {
	if m == nil {
		return Generator{ManifestID: id}
	}
	for _, a := range actionsOf(m) {
		if name := a.AgentName(); name != "" {
			return Generator{Name: name, Source: SourceSoftwareAgent, ManifestID: id}
		}
	}
	for _, cg := range m.ClaimGeneratorInfo {
		if cg.Name != "" {
			return Generator{Name: cg.Name, Source: SourceClaimGenerator, ManifestID: id}
		}
	}
	if m.SignatureInfo != nil && m.SignatureInfo.Issuer != "" {
		return Generator{Name: m.SignatureInfo.Issuer, Source: SourceSignature, ManifestID: id}
	}
	return Generator{ManifestID: id}
}
