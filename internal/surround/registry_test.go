package surround

import (
	"errors"
	"testing"
)

func TestBuiltinOutputs(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		id    string
		left  string
		right string
	}{
		{"(", "( ", " )"},
		{")", "(", ")"},
		{"[", "[ ", " ]"},
		{"]", "[", "]"},
		{"{", "{ ", " }"},
		{"}", "{", "}"},
		{"b", "(", ")"},
		{"q", `"`, `"`},
		{`"`, `"`, `"`},
		{"'", "'", "'"},
	}
	for _, tt := range tests {
		spec, err := r.Spec(tt.id, nil)
		if err != nil {
			t.Fatalf("Spec(%q): %v", tt.id, err)
		}
		left, right, err := spec.Output.Render(nil)
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.id, err)
		}
		if left != tt.left || right != tt.right {
			t.Errorf("%q: expected output %q/%q, got %q/%q", tt.id, tt.left, tt.right, left, right)
		}
	}
}

func TestBracketAliasMatchesAllKinds(t *testing.T) {
	e := NewEngine(NewRegistry(), 20, Cover)

	for _, text := range []string{"(x)", "[x]", "{x}"} {
		c, err := e.Find(docLines(text), Position{Line: 1, Col: 1}, "b", nil)
		if err != nil {
			t.Fatalf("Find b in %q: %v", text, err)
		}
		if c.Left.From.Col != 0 || c.Right.To.Col != 2 {
			t.Errorf("%q: expected pair (0,2), got (%d,%d)", text, c.Left.From.Col, c.Right.To.Col)
		}
	}
}

func TestUnregisteredCharFallsBackToItself(t *testing.T) {
	e := NewEngine(NewRegistry(), 20, Cover)

	c, err := e.Find(docLines("*bold* text"), Position{Line: 1, Col: 2}, "*", nil)
	if err != nil {
		t.Fatalf("Find *: %v", err)
	}
	if c.Left.From.Col != 0 || c.Right.To.Col != 5 {
		t.Errorf("expected (0,5), got (%d,%d)", c.Left.From.Col, c.Right.To.Col)
	}
}

func TestIdentifierValidation(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Spec("ab", nil); err == nil {
		t.Error("expected error for multi-character identifier")
	} else if _, ok := err.(*InputError); !ok {
		t.Errorf("expected InputError, got %T", err)
	}
	if _, err := r.Spec("\t", nil); err == nil {
		t.Error("expected error for control character identifier")
	}
	if _, err := r.Spec("", nil); err == nil {
		t.Error("expected error for empty identifier")
	}
}

func TestRegisterLiteralPair(t *testing.T) {
	r := NewRegistry()
	err := r.Register("m", CustomSpec{Open: "<<", Close: ">>"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := NewEngine(r, 20, Cover)
	res, err := e.Delete(docLines("<<x>>"), Position{Line: 1, Col: 2}, "m", nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	linesEqual(t, res.Lines, "x")

	// Without explicit output fields the literals double as output.
	spec, _ := r.Spec("m", nil)
	left, right, _ := spec.Output.Render(nil)
	if left != "<<" || right != ">>" {
		t.Errorf("expected output <</>>, got %q/%q", left, right)
	}
}

func TestRegisterOutputOnlyOverlay(t *testing.T) {
	r := NewRegistry()
	// Override only the output of the open-paren builtin; its matcher
	// keeps absorbing padding.
	if err := r.Register("(", CustomSpec{OutputLeft: "(", OutputRight: ")"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := NewEngine(r, 20, Cover)
	res, err := e.Replace(docLines("( x )"), Position{Line: 1, Col: 2}, "(", "(", nil)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	linesEqual(t, res.Lines, "(x)")
}

func TestRegisterPatternPair(t *testing.T) {
	r := NewRegistry()
	err := r.Register("s", CustomSpec{
		Find:        `\*\*.*?\*\*`,
		Extract:     `^(\*\*).*(\*\*)$`,
		OutputLeft:  "**",
		OutputRight: "**",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := NewEngine(r, 20, Cover)
	res, err := e.Delete(docLines("a **b** c"), Position{Line: 1, Col: 5}, "s", nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	linesEqual(t, res.Lines, "a b c")
}

func TestRegisterPatternInputKeepsDefaultOutput(t *testing.T) {
	r := NewRegistry()
	err := r.Register("x", CustomSpec{
		Find:    `<<.*?>>`,
		Extract: `^(<<).*?(>>)$`,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Matching follows the pattern; the unsupplied output falls back to
	// the identifier's default, the character itself on both sides.
	e := NewEngine(r, 20, Cover)
	res, err := e.Replace(docLines("a <<b>> c"), Position{Line: 1, Col: 4}, "x", "x", nil)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	linesEqual(t, res.Lines, "a xbx c")
}

func TestRegisterRejectsBadSpecs(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		id     string
		custom CustomSpec
	}{
		{"one capture group", "x", CustomSpec{Find: `<.*?>`, Extract: `^(<).*>$`, OutputLeft: "<", OutputRight: ">"}},
		{"three capture groups", "x", CustomSpec{Find: `<.*?>`, Extract: `^(<)(.*)(>)$`, OutputLeft: "<", OutputRight: ">"}},
		{"bad find regexp", "x", CustomSpec{Find: `(`, Extract: `^(a)(b)$`}},
		{"find without extract", "x", CustomSpec{Find: `<.*?>`}},
		{"open without close", "x", CustomSpec{Open: "<"}},
		{"both forms", "x", CustomSpec{Open: "<", Close: ">", Find: `a`, Extract: `(a)(b)`}},
		{"multi-char identifier", "xy", CustomSpec{Open: "<", Close: ">"}},
		{"reserved interactive id", "?", CustomSpec{Open: "<", Close: ">"}},
	}
	for _, tt := range tests {
		err := r.Register(tt.id, tt.custom)
		var specErr *InvalidSpecError
		if !errors.As(err, &specErr) {
			t.Errorf("%s: expected InvalidSpecError, got %v", tt.name, err)
		}
	}
}

func TestRegisterSymmetricCustom(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("~", CustomSpec{Open: "~~", Close: "~~"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := NewEngine(r, 20, Cover)
	res, err := e.Delete(docLines("a ~~b~~ c"), Position{Line: 1, Col: 4}, "~", nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	linesEqual(t, res.Lines, "a b c")
}

func TestIdentifiersSorted(t *testing.T) {
	r := NewRegistry()
	ids := r.Identifiers()
	if len(ids) == 0 {
		t.Fatal("expected built-in identifiers")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("identifiers not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
	for _, want := range []string{"(", ")", "b", "q", "f", "t"} {
		found := false
		for _, id := range ids {
			if id == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q among identifiers", want)
		}
	}
}
