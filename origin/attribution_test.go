package origin

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xdao.co/aiorigin/manifest"
)

func TestExtractGenerator_Priority(t *testing.T) {
	withAll := &manifest.Manifest{
		Assertions: []manifest.Assertion{
			manifest.Other{Label: "stds.exif"},
			manifest.ActionsV2{Actions: []manifest.Action{
				act("c2pa.opened", "", ""),
				aiCreated("Adobe Firefly Enhance"),
			}},
		},
		ClaimGeneratorInfo: []manifest.ClaimGenerator{{Name: "SomeOtherTool"}},
		SignatureInfo:      &manifest.SignatureInfo{Issuer: "Adobe Inc."},
	}

	cases := []struct {
		name string
		m    *manifest.Manifest
		want Generator
	}{
		{
			name: "software agent wins",
			m:    withAll,
			want: Generator{Name: "Adobe Firefly Enhance", Source: SourceSoftwareAgent, ManifestID: "m"},
		},
		{
			name: "agent on a non-generating action still counts",
			m: node([]manifest.Action{
				act("c2pa.opened", "", "Lightroom"),
				aiCreated("DALL-E"),
			}),
			want: Generator{Name: "Lightroom", Source: SourceSoftwareAgent, ManifestID: "m"},
		},
		{
			name: "first named claim generator",
			m: &manifest.Manifest{
				Assertions:         []manifest.Assertion{manifest.ActionsV2{Actions: []manifest.Action{aiCreated("")}}},
				ClaimGeneratorInfo: []manifest.ClaimGenerator{{}, {Name: "ChatGPT"}, {Name: "Later"}},
				SignatureInfo:      &manifest.SignatureInfo{Issuer: "OpenAI"},
			},
			want: Generator{Name: "ChatGPT", Source: SourceClaimGenerator, ManifestID: "m"},
		},
		{
			name: "signature issuer fallback",
			m: &manifest.Manifest{
				ClaimGenerator: "legacy-string-is-not-used",
				SignatureInfo:  &manifest.SignatureInfo{Issuer: "Truepic"},
			},
			want: Generator{Name: "Truepic", Source: SourceSignature, ManifestID: "m"},
		},
		{
			name: "no evidence",
			m:    &manifest.Manifest{SignatureInfo: &manifest.SignatureInfo{}},
			want: Generator{ManifestID: "m"},
		},
		{
			name: "nil manifest",
			m:    nil,
			want: Generator{ManifestID: "m"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractGenerator(tc.m, "m")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("generator mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_SoftwareAgentBeatsClaimGenerator(t *testing.T) {
	s := store("a", map[string]*manifest.Manifest{
		"a": {
			Assertions:         []manifest.Assertion{manifest.ActionsV2{Actions: []manifest.Action{aiCreated("Adobe Firefly Enhance")}}},
			ClaimGeneratorInfo: []manifest.ClaimGenerator{{Name: "SomeOtherTool"}},
		},
	})
	got := Classify(s)
	if got.Generator == nil || got.Generator.Name != "Adobe Firefly Enhance" {
		t.Fatalf("generator: %+v", got.Generator)
	}
	if v := got.Generator.Vendor(); v != "Adobe" {
		t.Fatalf("vendor: got %q want Adobe", v)
	}
}

func TestGenerator_VendorNil(t *testing.T) {
	var g *Generator
	if v := g.Vendor(); v != "" {
		t.Fatalf("nil generator vendor: got %q", v)
	}
}
