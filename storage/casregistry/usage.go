package casregistry

// Usage restricts which programs offer a backend.
//
// Backends are linked at build time: a backend package registers itself in
// init() and a binary enables it with a blank import.
type Usage uint8

const (
	// UsageCLI marks backends offered by the aiorigin CLI.
	UsageCLI Usage = 1 << iota
	// UsageDaemon marks backends offered by aiorigind.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
