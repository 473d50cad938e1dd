package report

import (
	"errors"
	"fmt"

	"xdao.co/aiorigin/keys"
)

// VerifySignature verifies the CRYPTO signature, if present.
//
// Returns (true, nil) if the report is signed and the signature verifies.
// Returns (false, nil) if the report is not signed (empty CRYPTO section).
// Returns (false, err) for malformed, non-canonical, or invalid signatures.
func VerifySignature(reportBytes []byte) (bool, error) {
	r, err := Parse(reportBytes)
	if err != nil {
		return false, fmt.Errorf("canonical report required: %w", err)
	}
	crypto := r.sections["CRYPTO"]
	if len(crypto) == 0 {
		return false, nil
	}

	sigAlg, hashAlg := crypto["Signature-Alg"], crypto["Hash-Alg"]
	signerKey, sig := crypto["Signer-Key"], crypto["Signature"]
	if sigAlg == "" || hashAlg == "" || signerKey == "" || sig == "" {
		return false, errors.New("CRYPTO: incomplete signature fields")
	}
	if sigAlg == "ed25519" && hashAlg != "sha256" {
		return false, fmt.Errorf("CRYPTO: unsupported Hash-Alg %q for ed25519", hashAlg)
	}

	scope, err := signatureScope(reportBytes)
	if err != nil {
		return false, err
	}
	if err := keys.Verify(signerKey, sigAlg, hashAlg, scope, sig); err != nil {
		return false, fmt.Errorf("CRYPTO: %w", err)
	}
	return true, nil
}
