package origin

import "testing"

func TestNormalizeVendor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ChatGPT Image Generator", "OpenAI"},
		{"OpenAI DALL·E 3", "OpenAI"},
		{"Google SynthID", "Google"},
		{"Gemini 2.5 Flash Image", "Google"},
		{"Google Imagen", "Google"},
		{"Adobe Firefly Enhance", "Adobe"},
		{"FIREFLY", "Adobe"},
		{"Bing Image Creator", "Microsoft"},
		{"Totally Unknown Tool", "Totally Unknown Tool"},
		{"", ""},
		// Table order decides overlaps: "gpt" (OpenAI) is checked before "bing" (Microsoft).
		{"Bing powered by GPT", "OpenAI"},
	}
	for _, tc := range cases {
		if got := NormalizeVendor(tc.in); got != tc.want {
			t.Fatalf("NormalizeVendor(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ai-generated", "AI Generated"},
		{"ai-assisted", "AI Assisted"},
		{"non-ai", "Non AI"},
		{"unknown", "Unknown"},
		{"AI-generated", "AI Generated"},
		{"Ai", "AI"},
		{"mixed-camelCase", "Mixed CamelCase"},
		{"3d-model", "3d Model"},
		{"a b", "A b"},
		{"ai generated", "Ai generated"},
		{"édité-ai", "Édité AI"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatLabel(tc.in); got != tc.want {
			t.Fatalf("FormatLabel(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
	if got := AIGenerated.Label(); got != "AI Generated" {
		t.Fatalf("Label: got %q", got)
	}
}

func TestVendors_ReturnsCopy(t *testing.T) {
	v := Vendors()
	if len(v) != 4 || v[0].Name != "OpenAI" || v[3].Name != "Microsoft" {
		t.Fatalf("unexpected table: %+v", v)
	}
	v[0].Keywords[0] = "mutated"
	if NormalizeVendor("openai") != "OpenAI" {
		t.Fatalf("vendor table was mutated through Vendors()")
	}
}
