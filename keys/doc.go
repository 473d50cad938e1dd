// Package keys formats signer keys and signs classification reports.
//
// Signer keys are written as "<alg>:<base64 public key>", for example
// "ed25519:..." or "dilithium3:...". Signatures are always computed over a
// digest of the message, never over the raw bytes.
package keys
