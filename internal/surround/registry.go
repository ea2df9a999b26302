package surround

import (
	"fmt"
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Registry maps one-character identifiers to surrounding specs. A fresh
// registry carries the built-in set; configuration and plugins overlay
// their own definitions on top of it at setup time.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry returns a registry populated with the built-in
// surroundings.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]Spec)}
	r.installBuiltins()
	return r
}

// installBuiltins registers the default surroundings. Open-bracket
// identifiers insert padded output; close-bracket identifiers insert the
// bare pair. "b" and "q" are the bracket and quote aliases.
func (r *Registry) installBuiltins() {
	brackets := []struct {
		open, close string
	}{
		{"(", ")"},
		{"[", "]"},
		{"{", "}"},
		{"<", ">"},
	}
	for _, b := range brackets {
		matcher := balancedMatcher{open: []byte(b.open), close: []byte(b.close)}
		r.specs[b.open] = Spec{
			Matcher: paddedMatcher{inner: matcher},
			Output:  Template{Left: b.open + " ", Right: " " + b.close},
		}
		r.specs[b.close] = Spec{
			Matcher: matcher,
			Output:  Template{Left: b.open, Right: b.close},
		}
	}

	r.specs["b"] = Spec{
		Matcher: unionMatcher{members: []Matcher{
			balancedMatcher{open: []byte("("), close: []byte(")")},
			balancedMatcher{open: []byte("["), close: []byte("]")},
			balancedMatcher{open: []byte("{"), close: []byte("}")},
		}},
		Output: Template{Left: "(", Right: ")"},
	}

	for _, q := range []string{`"`, "'", "`"} {
		r.specs[q] = Spec{
			Matcher: symmetricMatcher{delim: []byte(q)},
			Output:  Template{Left: q, Right: q},
		}
	}
	r.specs["q"] = Spec{
		Matcher: unionMatcher{members: []Matcher{
			symmetricMatcher{delim: []byte(`"`)},
			symmetricMatcher{delim: []byte("'")},
			symmetricMatcher{delim: []byte("`")},
		}},
		Output: Template{Left: `"`, Right: `"`},
	}

	r.specs["f"] = Spec{
		Matcher: funcallMatcher{},
		Output:  Template{Slot: SlotFuncall},
	}
	r.specs["t"] = Spec{
		Matcher: tagMatcher{},
		Output:  Template{Slot: SlotTag},
	}
}

// validIdentifier checks that id is a single printable character.
func validIdentifier(id string) error {
	if utf8.RuneCountInString(id) != 1 {
		return &InputError{Reason: fmt.Sprintf("identifier %q is not a single character", id)}
	}
	r, _ := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError || unicode.IsControl(r) {
		return &InputError{Reason: "identifier is not a printable character"}
	}
	return nil
}

// defaultSpec is the fallback for unregistered identifiers: the
// character surrounds itself.
func defaultSpec(id string) Spec {
	return Spec{
		Matcher: symmetricMatcher{delim: []byte(id)},
		Output:  Template{Left: id, Right: id},
	}
}

// Spec resolves an identifier to its surrounding spec. "?" synthesizes
// an interactive spec by prompting for both sides. Unregistered printable
// characters fall back to a symmetric literal of themselves.
func (r *Registry) Spec(id string, prompt PromptFunc) (Spec, error) {
	if err := validIdentifier(id); err != nil {
		return Spec{}, err
	}
	if id == "?" {
		left, err := promptInput(prompt, "Left surrounding: ")
		if err != nil {
			return Spec{}, err
		}
		right, err := promptInput(prompt, "Right surrounding: ")
		if err != nil {
			return Spec{}, err
		}
		return Spec{
			Matcher: literalMatcher{left: []byte(left), right: []byte(right)},
			Output:  Template{Left: left, Right: right},
		}, nil
	}
	if spec, ok := r.specs[id]; ok {
		return spec, nil
	}
	return defaultSpec(id), nil
}

// CustomSpec is a user-declared surrounding definition in string form,
// as it appears in configuration files or plugin registrations. Exactly
// one search form may be given: Open/Close literals, or Find/Extract
// regular expressions.
type CustomSpec struct {
	OutputLeft  string
	OutputRight string
	Open        string
	Close       string
	Find        string
	Extract     string
}

// Register overlays a custom definition on the identifier's current spec
// (built-in, previously registered, or the symmetric default). Only the
// supplied fields replace their counterparts. Returns InvalidSpecError
// for malformed definitions; callers treat that as fatal configuration.
func (r *Registry) Register(id string, custom CustomSpec) error {
	if err := validIdentifier(id); err != nil {
		return &InvalidSpecError{Identifier: id, Reason: err.Error()}
	}
	if id == "?" {
		return &InvalidSpecError{Identifier: id, Reason: "\"?\" is reserved for interactive surroundings"}
	}

	base, ok := r.specs[id]
	if !ok {
		base = defaultSpec(id)
	}

	hasPattern := custom.Find != "" || custom.Extract != ""
	hasLiteral := custom.Open != "" || custom.Close != ""
	switch {
	case hasPattern && hasLiteral:
		return &InvalidSpecError{Identifier: id, Reason: "open/close and find/extract are mutually exclusive"}
	case hasPattern:
		if custom.Find == "" || custom.Extract == "" {
			return &InvalidSpecError{Identifier: id, Reason: "find and extract must both be set"}
		}
		find, err := regexp.Compile(custom.Find)
		if err != nil {
			return &InvalidSpecError{Identifier: id, Reason: fmt.Sprintf("bad find pattern: %v", err)}
		}
		extract, err := regexp.Compile(custom.Extract)
		if err != nil {
			return &InvalidSpecError{Identifier: id, Reason: fmt.Sprintf("bad extract pattern: %v", err)}
		}
		if n := extract.NumSubexp(); n != 2 {
			return &InvalidSpecError{Identifier: id, Reason: fmt.Sprintf("extract pattern must have exactly 2 capture groups, has %d", n)}
		}
		base.Matcher = patternMatcher{find: find, extract: extract}
	case hasLiteral:
		if custom.Open == "" || custom.Close == "" {
			return &InvalidSpecError{Identifier: id, Reason: "open and close must both be set"}
		}
		if custom.Open == custom.Close {
			base.Matcher = symmetricMatcher{delim: []byte(custom.Open)}
		} else {
			base.Matcher = balancedMatcher{open: []byte(custom.Open), close: []byte(custom.Close)}
		}
		// Literal definitions double as the output unless overridden.
		if custom.OutputLeft == "" && custom.OutputRight == "" {
			base.Output = Template{Left: custom.Open, Right: custom.Close}
		}
	}

	if custom.OutputLeft != "" {
		base.Output.Left = custom.OutputLeft
		base.Output.Slot = SlotNone
	}
	if custom.OutputRight != "" {
		base.Output.Right = custom.OutputRight
		base.Output.Slot = SlotNone
	}
	if base.Output.Slot == SlotNone && base.Output.Left == "" && base.Output.Right == "" {
		return &InvalidSpecError{Identifier: id, Reason: "definition produces an empty output template"}
	}

	r.specs[id] = base
	return nil
}

// Identifiers returns the registered identifiers in sorted order, for
// listings.
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
