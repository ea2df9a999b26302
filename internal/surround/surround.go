// Package surround implements the surrounding-pair search and edit
// engine: given a document snapshot, a reference position, and a
// surrounding identifier, it locates the best-matching delimiter pair
// around that position and computes the mutation that adds, deletes, or
// replaces the delimiters.
//
// Searching is bounded to a window of lines around the reference and
// proceeds through locality/direction tiers governed by the configured
// Method. All operations are pure: they take the line array and return
// a new one, leaving the input untouched.
//
// Matching is purely textual. Delimiters inside string or comment
// literals are found like any others; that is a documented limitation,
// not a bug to fix here.
package surround

// Engine runs searches and edits against a registry of surrounding
// specs. The zero value is not usable; construct with NewEngine.
type Engine struct {
	registry *Registry
	nLines   int
	method   Method
}

// NewEngine creates an engine with the given search window radius and
// default method.
func NewEngine(registry *Registry, nLines int, method Method) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if nLines < 1 {
		nLines = 1
	}
	return &Engine{registry: registry, nLines: nLines, method: method}
}

// Registry exposes the engine's spec registry for registration.
func (e *Engine) Registry() *Registry { return e.registry }

// NLines returns the search window radius.
func (e *Engine) NLines() int { return e.nLines }

// SetNLines updates the search window radius; values below 1 are ignored.
func (e *Engine) SetNLines(n int) {
	if n >= 1 {
		e.nLines = n
	}
}

// Method returns the default search method.
func (e *Engine) Method() Method { return e.method }

// SetMethod updates the default search method.
func (e *Engine) SetMethod(m Method) { e.method = m }

// Find locates the best candidate for id around ref using the engine's
// default method.
func (e *Engine) Find(lines [][]byte, ref Position, id string, prompt PromptFunc) (Candidate, error) {
	return e.FindWith(lines, ref, id, e.method, prompt)
}

// FindWith is Find with an explicit method, for operations that override
// the default (e.g. jumping to the next or previous surrounding).
func (e *Engine) FindWith(lines [][]byte, ref Position, id string, method Method, prompt PromptFunc) (Candidate, error) {
	spec, err := e.registry.Spec(id, prompt)
	if err != nil {
		return Candidate{}, err
	}
	w := newWindow(lines, ref, e.nLines)
	c, ok := pick(enumerate(spec.Matcher, w), w, method)
	if !ok {
		return Candidate{}, &NotFoundError{Identifier: id, NLines: e.nLines, Method: method}
	}
	return c.export(w), nil
}

// Delete finds id's surrounding around ref and removes both delimiter
// parts, leaving the body in place.
func (e *Engine) Delete(lines [][]byte, ref Position, id string, prompt PromptFunc) (EditResult, error) {
	c, err := e.Find(lines, ref, id, prompt)
	if err != nil {
		return EditResult{}, err
	}
	return deleteParts(lines, c), nil
}

// Replace finds fromID's surrounding around ref and swaps its delimiters
// for toID's rendered output.
func (e *Engine) Replace(lines [][]byte, ref Position, fromID, toID string, prompt PromptFunc) (EditResult, error) {
	c, err := e.Find(lines, ref, fromID, prompt)
	if err != nil {
		return EditResult{}, err
	}
	spec, err := e.registry.Spec(toID, prompt)
	if err != nil {
		return EditResult{}, err
	}
	left, right, err := spec.Output.Render(prompt)
	if err != nil {
		return EditResult{}, err
	}
	return replaceParts(lines, c, left, right), nil
}

// Add surrounds the body span with id's rendered output. For a linewise
// body, indentation and trailing whitespace stay outside the new
// delimiters.
func (e *Engine) Add(lines [][]byte, body Span, id string, linewise bool, prompt PromptFunc) (EditResult, error) {
	spec, err := e.registry.Spec(id, prompt)
	if err != nil {
		return EditResult{}, err
	}
	left, right, err := spec.Output.Render(prompt)
	if err != nil {
		return EditResult{}, err
	}
	return addParts(lines, body, left, right, linewise), nil
}

// Yank finds id's surrounding around ref and returns the body text
// between the delimiters, along with the candidate itself.
func (e *Engine) Yank(lines [][]byte, ref Position, id string, prompt PromptFunc) ([]byte, Candidate, error) {
	c, err := e.Find(lines, ref, id, prompt)
	if err != nil {
		return nil, Candidate{}, err
	}
	return bodyText(lines, c), c, nil
}
