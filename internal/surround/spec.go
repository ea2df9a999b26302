package surround

import (
	"strings"
	"unicode"
)

// PromptFunc asks the user for a string, e.g. a tag name or the sides of
// an interactive surrounding. Implementations live in the host; tests
// pass canned responses. Returning an error aborts the operation.
type PromptFunc func(label string) (string, error)

// SlotKind says how a Template turns prompted input into delimiter texts.
type SlotKind int

const (
	// SlotNone renders Left and Right verbatim.
	SlotNone SlotKind = iota
	// SlotFuncall renders "name(" and ")" from a prompted function name.
	SlotFuncall
	// SlotTag renders "<tag>" and "</name>" from a prompted tag, where
	// name is the tag truncated at the first space.
	SlotTag
)

// Template is the output side of a spec: the delimiter texts inserted
// around a body by add and replace.
type Template struct {
	Left  string
	Right string
	Slot  SlotKind
}

// Render resolves the template to concrete delimiter texts, prompting
// when the template has an interpolation slot.
func (t Template) Render(prompt PromptFunc) (left, right string, err error) {
	switch t.Slot {
	case SlotFuncall:
		name, err := promptInput(prompt, "Function name: ")
		if err != nil {
			return "", "", err
		}
		return name + "(", ")", nil
	case SlotTag:
		tag, err := promptInput(prompt, "Tag: ")
		if err != nil {
			return "", "", err
		}
		name := tag
		if i := strings.IndexByte(tag, ' '); i >= 0 {
			name = tag[:i]
		}
		return "<" + tag + ">", "</" + name + ">", nil
	}
	return t.Left, t.Right, nil
}

// promptInput runs the prompt and rejects empty or control-character
// responses.
func promptInput(prompt PromptFunc, label string) (string, error) {
	if prompt == nil {
		return "", &InputError{Reason: "input required but no prompt available"}
	}
	input, err := prompt(label)
	if err != nil {
		return "", err
	}
	if input == "" {
		return "", &InputError{Reason: "empty input"}
	}
	for _, r := range input {
		if unicode.IsControl(r) {
			return "", &InputError{Reason: "control character in input"}
		}
	}
	return input, nil
}

// Spec couples an input matcher with an output template.
type Spec struct {
	Matcher Matcher
	Output  Template
}
