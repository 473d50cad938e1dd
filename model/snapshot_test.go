package model

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_ClassifyRequest_JSONShape(t *testing.T) {
	req := ClassifyRequest{
		Store:      BlobRef{CID: "bafk-store-1"},
		Compliance: ComplianceStrict,
	}

	b, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"store\": {\n" +
		"    \"cid\": \"bafk-store-1\"\n" +
		"  },\n" +
		"  \"compliance\": \"strict\"\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_ClassifyResponse_JSONShape(t *testing.T) {
	resp := ClassifyResponse{
		StoreCID:       "bafk-store-1",
		ActiveManifest: "urn:c2pa:active",
		Classification: "ai-generated",
		Label:          "AI Generated",
		AIGenerated:    true,
		Generator:      &Generator{Name: "Google Imagen", Source: "claim_generator", ManifestID: "urn:c2pa:gen"},
		Vendor:         "Google",
	}

	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"storeCID\": \"bafk-store-1\",\n" +
		"  \"activeManifest\": \"urn:c2pa:active\",\n" +
		"  \"classification\": \"ai-generated\",\n" +
		"  \"label\": \"AI Generated\",\n" +
		"  \"aiGenerated\": true,\n" +
		"  \"generator\": {\n" +
		"    \"name\": \"Google Imagen\",\n" +
		"    \"source\": \"claim_generator\",\n" +
		"    \"manifestId\": \"urn:c2pa:gen\"\n" +
		"  },\n" +
		"  \"vendor\": \"Google\"\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_UnknownResponse_OmitsGenerator(t *testing.T) {
	resp := ClassifyResponse{StoreCID: "bafk-store-2", Classification: "unknown", Label: "Unknown"}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	const want = `{"storeCID":"bafk-store-2","classification":"unknown","label":"Unknown","aiGenerated":false}`
	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}
