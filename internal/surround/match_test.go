package surround

import (
	"regexp"
	"testing"
)

func TestBalancedMatcherNesting(t *testing.T) {
	m := balancedMatcher{open: []byte("("), close: []byte(")")}
	pairs := m.pairs([]byte("(a(b)c)"))

	expected := []pairMatch{
		{2, 3, 4, 5}, // (b)
		{0, 1, 6, 7}, // outer
	}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("pair %d: expected %v, got %v", i, want, pairs[i])
		}
	}
}

func TestBalancedMatcherIgnoresUnbalanced(t *testing.T) {
	m := balancedMatcher{open: []byte("("), close: []byte(")")}

	if pairs := m.pairs([]byte(")a(")); len(pairs) != 0 {
		t.Errorf("expected no pairs for \")a(\", got %v", pairs)
	}
	if pairs := m.pairs([]byte("((a)")); len(pairs) != 1 {
		t.Errorf("expected 1 pair for \"((a)\", got %v", pairs)
	}
}

func TestSymmetricMatcherEnumeratesAllPairs(t *testing.T) {
	m := symmetricMatcher{delim: []byte(`"`)}
	pairs := m.pairs([]byte(`"a"b"`))

	// Occurrences at 0, 2, 4: three unordered pairs.
	expected := []pairMatch{
		{0, 1, 2, 3},
		{0, 1, 4, 5},
		{2, 3, 4, 5},
	}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("pair %d: expected %v, got %v", i, want, pairs[i])
		}
	}
}

func TestPaddedMatcherAbsorbsWhitespace(t *testing.T) {
	m := paddedMatcher{inner: balancedMatcher{open: []byte("("), close: []byte(")")}}
	pairs := m.pairs([]byte("( hello )"))

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %v", pairs)
	}
	want := pairMatch{0, 2, 7, 9} // "( " and " )"
	if pairs[0] != want {
		t.Errorf("expected %v, got %v", want, pairs[0])
	}
}

func TestTagMatcher(t *testing.T) {
	m := tagMatcher{}
	pairs := m.pairs([]byte(`<div class="x">body</div>`))

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %v", pairs)
	}
	want := pairMatch{0, 15, 19, 25}
	if pairs[0] != want {
		t.Errorf("expected %v, got %v", want, pairs[0])
	}
}

func TestTagMatcherNearestClose(t *testing.T) {
	// Same-name nesting pairs each opener with the nearest closer.
	m := tagMatcher{}
	pairs := m.pairs([]byte("<a><a>x</a></a>"))

	expected := []pairMatch{
		{0, 3, 7, 11},
		{3, 6, 7, 11},
	}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("pair %d: expected %v, got %v", i, want, pairs[i])
		}
	}
}

func TestTagMatcherRejectsNonTags(t *testing.T) {
	m := tagMatcher{}
	for _, text := range []string{"a < b > c", "<>", "</close>", "<open>no close"} {
		if pairs := m.pairs([]byte(text)); len(pairs) != 0 {
			t.Errorf("%q: expected no pairs, got %v", text, pairs)
		}
	}
}

func TestFuncallMatcherNested(t *testing.T) {
	m := funcallMatcher{}
	pairs := m.pairs([]byte("f(g(x))"))

	expected := []pairMatch{
		{0, 2, 6, 7}, // f( ... )
		{2, 4, 5, 6}, // g( ... )
	}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("pair %d: expected %v, got %v", i, want, pairs[i])
		}
	}
}

func TestFuncallMatcherDottedName(t *testing.T) {
	m := funcallMatcher{}
	pairs := m.pairs([]byte("pkg.fn(arg)"))

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %v", pairs)
	}
	want := pairMatch{0, 7, 10, 11}
	if pairs[0] != want {
		t.Errorf("expected %v, got %v", want, pairs[0])
	}
}

func TestFuncallMatcherRequiresName(t *testing.T) {
	m := funcallMatcher{}
	if pairs := m.pairs([]byte("(bare)")); len(pairs) != 0 {
		t.Errorf("expected no pairs for bare parens, got %v", pairs)
	}
	if pairs := m.pairs([]byte("123(x)")); len(pairs) != 0 {
		t.Errorf("expected no pairs for digit-only name, got %v", pairs)
	}
}

func TestLiteralMatcherShortestMatch(t *testing.T) {
	m := literalMatcher{left: []byte("<<"), right: []byte(">>")}
	pairs := m.pairs([]byte("<<a>> <<b>>"))

	expected := []pairMatch{
		{0, 2, 3, 5},
		{6, 8, 9, 11},
	}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d: %v", len(expected), len(pairs), pairs)
	}
	for i, want := range expected {
		if pairs[i] != want {
			t.Errorf("pair %d: expected %v, got %v", i, want, pairs[i])
		}
	}
}

func TestPatternMatcherExtractsParts(t *testing.T) {
	m := patternMatcher{
		find:    regexp.MustCompile(`\*\*.*?\*\*`),
		extract: regexp.MustCompile(`^(\*\*).*(\*\*)$`),
	}
	pairs := m.pairs([]byte("a **b** c"))

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %v", pairs)
	}
	want := pairMatch{2, 4, 5, 7}
	if pairs[0] != want {
		t.Errorf("expected %v, got %v", want, pairs[0])
	}
}

func TestPatternMatcherNonOverlappingPass(t *testing.T) {
	m := patternMatcher{
		find:    regexp.MustCompile(`\*.*?\*`),
		extract: regexp.MustCompile(`^(\*).*(\*)$`),
	}
	pairs := m.pairs([]byte("*a* *b*"))

	if len(pairs) != 2 {
		t.Fatalf("expected 2 non-overlapping matches, got %v", pairs)
	}
}
