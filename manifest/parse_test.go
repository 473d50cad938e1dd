package manifest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleStore = `{
  "active_manifest": "urn:uuid:active",
  "manifests": {
    "urn:uuid:active": {
      "title": "edited.jpg",
      "claim_generator_info": [{"name": "Photoshop", "version": "25.0"}],
      "signature_info": {"issuer": "Adobe Inc."},
      "assertions": [
        {"label": "stds.schema-org.CreativeWork", "data": {"author": []}},
        {"label": "c2pa.actions.v2", "data": {"actions": [
          {"action": "c2pa.opened"},
          {"action": "c2pa.edited",
           "digitalSourceType": "http://cv.iptc.org/newscodes/digitalsourcetype/trainedAlgorithmicMedia",
           "softwareAgent": {"name": "Adobe Firefly", "version": "3"}}
        ]}}
      ],
      "ingredients": [{"title": "base.png", "relationship": "parentOf", "active_manifest": "urn:uuid:parent"}]
    },
    "urn:uuid:parent": {
      "assertions": []
    }
  }
}`

func TestParse_DecodesStore(t *testing.T) {
	s, err := Parse([]byte(sampleStore))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.ActiveManifest != "urn:uuid:active" {
		t.Fatalf("ActiveManifest: got %q", s.ActiveManifest)
	}
	m, ok := s.Lookup("urn:uuid:active")
	if !ok {
		t.Fatalf("active manifest not found")
	}

	want := &Manifest{
		Title:              "edited.jpg",
		ClaimGeneratorInfo: []ClaimGenerator{{Name: "Photoshop", Version: "25.0"}},
		SignatureInfo:      &SignatureInfo{Issuer: "Adobe Inc."},
		Assertions: []Assertion{
			Other{Label: "stds.schema-org.CreativeWork", Data: []byte(`{"author": []}`)},
			ActionsV2{Actions: []Action{
				{Action: "c2pa.opened"},
				{
					Action:            "c2pa.edited",
					DigitalSourceType: TrainedAlgorithmicMedia,
					SoftwareAgent:     &SoftwareAgent{Name: "Adobe Firefly", Version: "3"},
				},
			}},
		},
		Ingredients: []Ingredient{{Title: "base.png", Relationship: "parentOf", ActiveManifest: "urn:uuid:parent"}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ActionsShapeVariants(t *testing.T) {
	cases := []struct {
		name      string
		data      string
		wantOther bool
		wantN     int
	}{
		{name: "array", data: `{"actions": [{"action": "c2pa.created"}]}`, wantN: 1},
		{name: "empty array", data: `{"actions": []}`, wantN: 0},
		{name: "actions not array", data: `{"actions": {"action": "c2pa.created"}}`, wantOther: true},
		{name: "actions missing", data: `{"metadata": {}}`, wantOther: true},
		{name: "actions null", data: `{"actions": null}`, wantOther: true},
		{name: "data is array", data: `[{"action": "c2pa.created"}]`, wantOther: true},
		{name: "data is string", data: `"c2pa.created"`, wantOther: true},
		{name: "data null", data: `null`, wantOther: true},
		{name: "non-object entries dropped", data: `{"actions": ["c2pa.created", 7, null, {"action": "c2pa.edited"}]}`, wantN: 1},
		{name: "ill-typed entry dropped", data: `{"actions": [{"action": 7}, {"action": "c2pa.edited"}]}`, wantN: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := `{"active_manifest": "m", "manifests": {"m": {"assertions": [{"label": "c2pa.actions.v2", "data": ` + tc.data + `}]}}}`
			s, err := Parse([]byte(doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			m, _ := s.Lookup("m")
			if len(m.Assertions) != 1 {
				t.Fatalf("expected 1 assertion, got %d", len(m.Assertions))
			}
			switch a := m.Assertions[0].(type) {
			case ActionsV2:
				if tc.wantOther {
					t.Fatalf("expected Other, got ActionsV2")
				}
				if len(a.Actions) != tc.wantN {
					t.Fatalf("actions: got %d want %d", len(a.Actions), tc.wantN)
				}
			case Other:
				if !tc.wantOther {
					t.Fatalf("expected ActionsV2, got Other")
				}
				if a.Label != LabelActionsV2 {
					t.Fatalf("Other label: got %q", a.Label)
				}
			}
		})
	}
}

func TestParse_SoftwareAgentForms(t *testing.T) {
	doc := `{"manifests": {"m": {"assertions": [{"label": "c2pa.actions.v2", "data": {"actions": [
		{"action": "c2pa.created", "softwareAgent": "DALL-E"},
		{"action": "c2pa.created", "softwareAgent": {"name": "Imagen"}},
		{"action": "c2pa.created", "softwareAgent": 3},
		{"action": "c2pa.created"}
	]}}]}}}`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.ActiveManifest != "" {
		t.Fatalf("expected no active manifest, got %q", s.ActiveManifest)
	}
	m, _ := s.Lookup("m")
	acts := m.Assertions[0].(ActionsV2).Actions
	got := []string{acts[0].AgentName(), acts[1].AgentName(), acts[2].AgentName(), acts[3].AgentName()}
	want := []string{"DALL-E", "Imagen", "", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("agent names (-want +got):\n%s", diff)
	}
}

func TestParse_RejectsMalformedEnvelope(t *testing.T) {
	for _, doc := range []string{``, `[]`, `"x"`, `{"manifests": []}`, `{"active_manifest": 3}`, `{`} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q): got %v want ErrMalformed", doc, err)
		}
	}
}

func TestStore_LookupMissing(t *testing.T) {
	var nilStore *Store
	if _, ok := nilStore.Lookup("x"); ok {
		t.Fatalf("nil store lookup should fail")
	}
	s := &Store{Manifests: map[string]*Manifest{"a": nil}}
	if _, ok := s.Lookup("a"); ok {
		t.Fatalf("nil manifest entry should not resolve")
	}
	if _, ok := s.Lookup(""); ok {
		t.Fatalf("empty id should not resolve")
	}
}

func TestParse_WrongTypedFieldsDegrade(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		want     *Manifest
	}{
		{
			name:     "claim_generator_info is an object",
			manifest: `{"claim_generator_info": {"name": "X"}, "signature_info": {"issuer": "Signer"}}`,
			want:     &Manifest{SignatureInfo: &SignatureInfo{Issuer: "Signer"}, Assertions: []Assertion{}},
		},
		{
			name:     "claim_generator_info entries of mixed shape",
			manifest: `{"claim_generator_info": ["X", null, {"name": 7, "version": "1"}, {"name": "Y"}]}`,
			want: &Manifest{
				ClaimGeneratorInfo: []ClaimGenerator{{Version: "1"}, {Name: "Y"}},
				Assertions:         []Assertion{},
			},
		},
		{
			name:     "numeric issuer",
			manifest: `{"signature_info": {"issuer": 5, "alg": "Es256"}}`,
			want:     &Manifest{SignatureInfo: &SignatureInfo{Alg: "Es256"}, Assertions: []Assertion{}},
		},
		{
			name:     "signature_info is a string",
			manifest: `{"signature_info": "Signer"}`,
			want:     &Manifest{Assertions: []Assertion{}},
		},
		{
			name:     "numeric ingredient reference",
			manifest: `{"ingredients": [{"title": "a.png", "active_manifest": 7}, "b.png", {"active_manifest": "p"}]}`,
			want: &Manifest{
				Ingredients: []Ingredient{{Title: "a.png"}, {ActiveManifest: "p"}},
				Assertions:  []Assertion{},
			},
		},
		{
			name:     "ingredients is an object",
			manifest: `{"ingredients": {"active_manifest": "p"}}`,
			want:     &Manifest{Assertions: []Assertion{}},
		},
		{
			name:     "numeric assertion label",
			manifest: `{"assertions": [{"label": 3, "data": {}}, 4, {"label": "c2pa.actions.v2", "data": {"actions": []}}]}`,
			want: &Manifest{Assertions: []Assertion{
				Other{Data: []byte(`{}`)},
				ActionsV2{Actions: []Action{}},
			}},
		},
		{
			name:     "scalar string fields of the wrong type",
			manifest: `{"title": 1, "format": false, "claim_generator": {}, "label": "urn:x"}`,
			want:     &Manifest{Label: "urn:x", Assertions: []Assertion{}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := `{"active_manifest": "m", "manifests": {"m": ` + tc.manifest + `}}`
			s, err := Parse([]byte(doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			m, ok := s.Lookup("m")
			if !ok {
				t.Fatalf("manifest m not decoded")
			}
			if diff := cmp.Diff(tc.want, m); diff != "" {
				t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_NonObjectManifestIsOmitted(t *testing.T) {
	doc := `{"active_manifest": "a", "manifests": {
		"a": {"ingredients": [{"active_manifest": "b"}]},
		"b": [1, 2],
		"c": "text",
		"d": null
	}}`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := s.Lookup("a"); !ok {
		t.Fatalf("manifest a should be decoded")
	}
	for _, id := range []string{"b", "c", "d"} {
		if _, ok := s.Manifests[id]; ok {
			t.Fatalf("manifest %s should be omitted", id)
		}
	}
}
