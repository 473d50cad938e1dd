// Package compliance selects how the classification boundary treats
// inconclusive results.
package compliance

import "fmt"

// ComplianceMode is Permissive by default.
//
// Permissive returns every classification, including "unknown", as data.
// Strict turns an "unknown" classification into an error so callers that
// need a definite answer do not have to special-case it.
type ComplianceMode int

const (
	Permissive ComplianceMode = iota
	Strict
)

func (m ComplianceMode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("ComplianceMode(%d)", int(m))
	}
}

// ParseMode accepts "permissive" or "strict"; "" means Permissive.
func ParseMode(s string) (ComplianceMode, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("compliance: invalid mode %q (want permissive|strict)", s)
	}
}
