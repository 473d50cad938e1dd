package report

import (
	"bytes"
	"crypto/ed25519"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/google/go-cmp/cmp"

	"xdao.co/aiorigin/keys"
	"xdao.co/aiorigin/model"
)

func sampleResponse() *model.ClassifyResponse {
	return &model.ClassifyResponse{
		StoreCID:       "bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy",
		ActiveManifest: "urn:c2pa:active",
		Classification: "ai-generated",
		Label:          "AI Generated",
		AIGenerated:    true,
		Generator:      &model.Generator{Name: "Adobe Firefly", Source: "softwareAgent", ManifestID: "urn:c2pa:gen"},
		Vendor:         "Adobe",
	}
}

func testKey() ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return ed25519.NewKeyFromSeed(seed)
}

type deterministicReader struct{ b byte }

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func TestRender_Golden(t *testing.T) {
	got, err := Render(sampleResponse(), RenderOptions{GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := strings.Join([]string{
		Preamble,
		"META",
		"Generated-At: 2026-01-02T03:04:05Z",
		"Reporter-ID: xdao-aiorigin-reference",
		"Spec: xdao-aiorigin-report-1",
		"Version: 1",
		"",
		"INPUTS",
		"Active-Manifest: urn:c2pa:active",
		"Store-CID: bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy",
		"",
		"RESULT",
		"AI-Generated: true",
		"Classification: ai-generated",
		"Label: AI Generated",
		"",
		"GENERATOR",
		"Manifest-ID: urn:c2pa:gen",
		"Name: Adobe Firefly",
		"Source: softwareAgent",
		"Vendor: Adobe",
		"",
		"CRYPTO",
		"",
		Postamble,
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DeterministicAndCanonical(t *testing.T) {
	opts := RenderOptions{PrivateKey: testKey()}
	a, err := RenderDocument(sampleResponse(), opts)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	b, err := RenderDocument(sampleResponse(), opts)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !bytes.Equal(a.Bytes, b.Bytes) || a.CID != b.CID {
		t.Fatalf("expected identical documents")
	}
	if _, err := Canonicalize(a.Bytes); err != nil {
		t.Fatalf("rendered report not canonical: %v", err)
	}
}

func TestRender_UnknownOmitsGenerator(t *testing.T) {
	resp := &model.ClassifyResponse{StoreCID: "bafk-x", Classification: "unknown", Label: "Unknown"}
	b, err := Render(resp, RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := r.Field("RESULT", "AI-Generated"); got != "false" {
		t.Fatalf("AI-Generated: got %q", got)
	}
	if !strings.Contains(string(b), "GENERATOR\n\nCRYPTO\n\n") {
		t.Fatalf("expected empty GENERATOR and CRYPTO sections:\n%s", b)
	}
}

func TestRender_CleansManifestSuppliedValues(t *testing.T) {
	resp := sampleResponse()
	resp.Generator.Name = "Evil\nSignature: forged  "
	b, err := Render(resp, RenderOptions{PrivateKey: testKey()})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := r.Field("GENERATOR", "Name"); got != "Evil Signature: forged" {
		t.Fatalf("Name: got %q", got)
	}
	if ok, err := VerifySignature(b); !ok || err != nil {
		t.Fatalf("VerifySignature: ok=%v err=%v", ok, err)
	}
}

func TestVerifySignature_Ed25519(t *testing.T) {
	b, err := Render(sampleResponse(), RenderOptions{PrivateKey: testKey()})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := r.Field("CRYPTO", "Signer-Key"), keys.SignerKeyFromSeed(testKey().Seed()); got != want {
		t.Fatalf("Signer-Key: got %q want %q", got, want)
	}

	ok, err := VerifySignature(b)
	if err != nil || !ok {
		t.Fatalf("VerifySignature: ok=%v err=%v", ok, err)
	}

	tampered := bytes.Replace(b, []byte("Classification: ai-generated"), []byte("Classification: non-ai"), 1)
	if ok, err := VerifySignature(tampered); ok || err == nil {
		t.Fatalf("expected tampered report to fail, ok=%v err=%v", ok, err)
	}
}

func TestVerifySignature_Dilithium3(t *testing.T) {
	_, sk, err := mode3.GenerateKey(io.Reader(&deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	b, err := Render(sampleResponse(), RenderOptions{Dilithium3Key: sk})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := r.Field("CRYPTO", "Hash-Alg"); got != "sha3-256" {
		t.Fatalf("Hash-Alg: got %q", got)
	}
	ok, err := VerifySignature(b)
	if err != nil || !ok {
		t.Fatalf("VerifySignature: ok=%v err=%v", ok, err)
	}
}

func TestVerifySignature_Unsigned(t *testing.T) {
	b, err := Render(sampleResponse(), RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	ok, err := VerifySignature(b)
	if ok || err != nil {
		t.Fatalf("unsigned: ok=%v err=%v", ok, err)
	}
}

func TestRender_RejectsBadOptions(t *testing.T) {
	_, sk, err := mode3.GenerateKey(io.Reader(&deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if _, err := Render(nil, RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil response")
	}
	if _, err := Render(sampleResponse(), RenderOptions{PrivateKey: testKey(), Dilithium3Key: sk}); err == nil {
		t.Fatalf("expected error for two keys")
	}
	if _, err := Render(sampleResponse(), RenderOptions{Dilithium3Key: sk, HashAlg: "md5"}); err == nil {
		t.Fatalf("expected error for unsupported hash")
	}
}

func TestParse_RejectsNonCanonical(t *testing.T) {
	good, err := Render(sampleResponse(), RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	cases := map[string][]byte{
		"empty":               nil,
		"crlf":                bytes.ReplaceAll(good, []byte("\n"), []byte("\r\n")),
		"no trailing newline": bytes.TrimSuffix(good, []byte("\n")),
		"trailing space":      bytes.Replace(good, []byte("Version: 1"), []byte("Version: 1 "), 1),
		"unsorted":            bytes.Replace(good, []byte("Label: AI Generated"), []byte("Label: AI Generated\nAAA: x"), 1),
		"missing section":     bytes.Replace(good, []byte("GENERATOR\n"), nil, 1),
		"bad preamble":        bytes.Replace(good, []byte(Preamble), []byte("-----BEGIN-----"), 1),
		"malformed line":      bytes.Replace(good, []byte("Version: 1"), []byte("Version"), 1),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Fatalf("expected error")
			}
			if _, err := CID(in); err == nil {
				t.Fatalf("CID: expected error")
			}
		})
	}
}
