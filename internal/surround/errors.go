package surround

import "fmt"

// NotFoundError reports that no candidate survived any search tier.
// Recoverable: the caller shows it as a status message.
type NotFoundError struct {
	Identifier string
	NLines     int
	Method     Method
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no surrounding %q found within %d lines (method %s)", e.Identifier, e.NLines, e.Method)
}

// InvalidSpecError reports a malformed surrounding definition. Raised at
// registration time; configuration errors are treated as fatal by main.
type InvalidSpecError struct {
	Identifier string
	Reason     string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid surrounding spec %q: %s", e.Identifier, e.Reason)
}

// InputError reports unusable interactive input, such as a multi-character
// identifier or an empty prompt response. Recoverable: the current
// operation aborts without touching the document.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}
