package cidutil

import (
	"errors"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

func TestSum_DeterministicAndDecodable(t *testing.T) {
	b := []byte(`{"active_manifest":"a","manifests":{}}`)
	a1, err := Sum(b)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if String(b) != a1.String() {
		t.Fatalf("String and Sum disagree")
	}
	got, err := Decode(a1.String())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equals(a1) {
		t.Fatalf("round trip mismatch")
	}
	if !Matches(a1, b) {
		t.Fatalf("Matches: expected true")
	}
	if Matches(a1, []byte("other")) {
		t.Fatalf("Matches: expected false for different bytes")
	}
}

func TestDecode_RejectsOtherPrefixes(t *testing.T) {
	mh, err := multihash.Sum([]byte("x"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatalf("multihash.Sum: %v", err)
	}
	dagPB := cid.NewCidV1(cid.DagProtobuf, mh)
	if _, err := Decode(dagPB.String()); !errors.Is(err, ErrUnsupportedCID) {
		t.Fatalf("got %v want ErrUnsupportedCID", err)
	}
	if _, err := Decode("not-a-cid"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
