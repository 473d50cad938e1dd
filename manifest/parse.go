package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type wireStore struct {
	ActiveManifest *string                    `json:"active_manifest"`
	Manifests      map[string]json.RawMessage `json:"manifests"`
}

type wireAction struct {
	Action            string          `json:"action"`
	DigitalSourceType string          `json:"digitalSourceType"`
	Description       string          `json:"description"`
	SoftwareAgent     json.RawMessage `json:"softwareAgent"`
}

// Parse decodes the JSON projection of a manifest store.
//
// Only the envelope must be well formed: a JSON object whose
// "active_manifest" is a string and whose "manifests" is an object.
// Everything below that is decoded leniently. A manifest that is not an
// object is left out of Manifests. A manifest field of the wrong type reads
// as its zero value, and list elements of the wrong shape are dropped. A
// c2pa.actions.v2 assertion whose data is not an object with an "actions"
// array becomes Other.
func Parse(b []byte) (*Store, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil, fmt.Errorf("%w: expected JSON object", ErrMalformed)
	}
	var w wireStore
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s := &Store{Manifests: make(map[string]*Manifest, len(w.Manifests))}
	if w.ActiveManifest != nil {
		s.ActiveManifest = *w.ActiveManifest
	}
	for id, raw := range w.Manifests {
		if m, ok := decodeManifest(raw); ok {
			s.Manifests[id] = m
		}
	}
	return s, nil
}

// object decodes raw as a JSON object. It reports false for null and for
// any other JSON type.
func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// array decodes raw as a JSON array. Anything else yields nil.
func array(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	return elems
}

// str returns fields[key] when it is a JSON string, and "" otherwise.
func str(fields map[string]json.RawMessage, key string) string {
	raw := bytes.TrimSpace(fields[key])
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeManifest(raw json.RawMessage) (*Manifest, bool) {
	f, ok := object(raw)
	if !ok {
		return nil, false
	}
	m := &Manifest{
		Label:          str(f, "label"),
		Title:          str(f, "title"),
		Format:         str(f, "format"),
		ClaimGenerator: str(f, "claim_generator"),
	}

	for _, e := range array(f["claim_generator_info"]) {
		if g, ok := object(e); ok {
			m.ClaimGeneratorInfo = append(m.ClaimGeneratorInfo, ClaimGenerator{
				Name:    str(g, "name"),
				Version: str(g, "version"),
			})
		}
	}
	if si, ok := object(f["signature_info"]); ok {
		m.SignatureInfo = &SignatureInfo{
			Issuer: str(si, "issuer"),
			Alg:    str(si, "alg"),
			Time:   str(si, "time"),
		}
	}
	for _, e := range array(f["ingredients"]) {
		if in, ok := object(e); ok {
			m.Ingredients = append(m.Ingredients, Ingredient{
				Title:          str(in, "title"),
				Relationship:   str(in, "relationship"),
				ActiveManifest: str(in, "active_manifest"),
			})
		}
	}

	elems := array(f["assertions"])
	m.Assertions = make([]Assertion, 0, len(elems))
	for _, e := range elems {
		if a, ok := object(e); ok {
			m.Assertions = append(m.Assertions, decodeAssertion(str(a, "label"), a["data"]))
		}
	}
	return m, true
}

func decodeAssertion(label string, data json.RawMessage) Assertion {
	if label != LabelActionsV2 {
		return Other{Label: label, Data: []byte(data)}
	}
	actions, ok := decodeActions(data)
	if !ok {
		return Other{Label: label, Data: []byte(data)}
	}
	return ActionsV2{Actions: actions}
}

func decodeActions(data json.RawMessage) ([]Action, bool) {
	body, ok := object(data)
	if !ok {
		return nil, false
	}
	raw, ok := body["actions"]
	if !ok {
		return nil, false
	}
	elems := array(raw)
	if elems == nil {
		return nil, false
	}

	out := make([]Action, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			continue
		}
		var wa wireAction
		if err := json.Unmarshal(e, &wa); err != nil {
			continue
		}
		out = append(out, Action{
			Action:            wa.Action,
			DigitalSourceType: wa.DigitalSourceType,
			Description:       wa.Description,
			SoftwareAgent:     decodeAgent(wa.SoftwareAgent),
		})
	}
	return out, true
}

// decodeAgent accepts both the v2 object form and the v1 bare string form.
func decodeAgent(raw json.RawMessage) *SoftwareAgent {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil
		}
		return &SoftwareAgent{Name: name}
	case '{':
		a, _ := object(raw)
		return &SoftwareAgent{Name: str(a, "name"), Version: str(a, "version")}
	default:
		return nil
	}
}
