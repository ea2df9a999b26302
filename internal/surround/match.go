package surround

import (
	"bytes"
	"regexp"
)

// pairMatch is a raw match in window text: two half-open byte ranges,
// left part [ls, le) and right part [rs, re).
type pairMatch struct {
	ls, le int
	rs, re int
}

// Matcher finds every occurrence of a surrounding's two parts in text.
// Implementations scan only the text they are given; the caller bounds
// it to the neighborhood window.
type Matcher interface {
	pairs(text []byte) []pairMatch
}

// balancedMatcher matches distinct open/close literals with proper
// nesting: each close literal pairs with the innermost unclosed open,
// via a depth-counting stack scan.
type balancedMatcher struct {
	open  []byte
	close []byte
}

func (m balancedMatcher) pairs(text []byte) []pairMatch {
	var out []pairMatch
	var stack []int
	i := 0
	for i < len(text) {
		if bytes.HasPrefix(text[i:], m.open) {
			stack = append(stack, i)
			i += len(m.open)
			continue
		}
		if bytes.HasPrefix(text[i:], m.close) {
			if len(stack) > 0 {
				openAt := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				out = append(out, pairMatch{openAt, openAt + len(m.open), i, i + len(m.close)})
			}
			i += len(m.close)
			continue
		}
		i++
	}
	return out
}

// symmetricMatcher matches a delimiter whose open and close are the same
// literal (quotes, single punctuation). Nesting is undefined for these,
// so every ordered pair of occurrences is a candidate. Quadratic in the
// occurrence count, which the window bound keeps small.
type symmetricMatcher struct {
	delim []byte
}

func (m symmetricMatcher) pairs(text []byte) []pairMatch {
	if len(m.delim) == 0 {
		return nil
	}
	var occ []int
	for i := 0; i+len(m.delim) <= len(text); {
		if bytes.HasPrefix(text[i:], m.delim) {
			occ = append(occ, i)
			i += len(m.delim)
		} else {
			i++
		}
	}
	var out []pairMatch
	for a := 0; a < len(occ); a++ {
		for b := a + 1; b < len(occ); b++ {
			out = append(out, pairMatch{occ[a], occ[a] + len(m.delim), occ[b], occ[b] + len(m.delim)})
		}
	}
	return out
}

// paddedMatcher extends each part of the inner matcher's pairs over the
// whitespace adjacent to the body. Open-bracket identifiers use this so
// deleting "( x )" removes the padding along with the brackets.
type paddedMatcher struct {
	inner Matcher
}

func (m paddedMatcher) pairs(text []byte) []pairMatch {
	out := m.inner.pairs(text)
	for i, p := range out {
		for p.le < p.rs && isPadByte(text[p.le]) {
			p.le++
		}
		for p.rs > p.le && isPadByte(text[p.rs-1]) {
			p.rs--
		}
		out[i] = p
	}
	return out
}

func isPadByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// unionMatcher merges the candidates of several matchers, for alias
// identifiers like "any bracket".
type unionMatcher struct {
	members []Matcher
}

func (m unionMatcher) pairs(text []byte) []pairMatch {
	var out []pairMatch
	for _, member := range m.members {
		out = append(out, member.pairs(text)...)
	}
	return out
}

// patternMatcher matches a find regexp and splits each match into its two
// delimiter parts with an extract regexp of exactly two capture groups.
// Matches within one pass do not overlap; registration validates the
// group count.
type patternMatcher struct {
	find    *regexp.Regexp
	extract *regexp.Regexp
}

func (m patternMatcher) pairs(text []byte) []pairMatch {
	var out []pairMatch
	for _, loc := range m.find.FindAllIndex(text, -1) {
		sub := m.extract.FindSubmatchIndex(text[loc[0]:loc[1]])
		if sub == nil || len(sub) < 6 || sub[2] < 0 || sub[4] < 0 {
			continue
		}
		p := pairMatch{
			ls: loc[0] + sub[2],
			le: loc[0] + sub[3],
			rs: loc[0] + sub[4],
			re: loc[0] + sub[5],
		}
		if p.ls >= p.le || p.rs >= p.re || p.le > p.rs {
			continue
		}
		out = append(out, p)
	}
	return out
}

// tagMatcher matches markup tags: an opening <name ...> paired with the
// nearest following </name>. Same-name nesting is not balance-checked;
// the nearest closer always wins.
type tagMatcher struct{}

func (tagMatcher) pairs(text []byte) []pairMatch {
	var out []pairMatch
	for i := 0; i < len(text); i++ {
		if text[i] != '<' {
			continue
		}
		name, openEnd := parseOpenTag(text, i)
		if openEnd < 0 {
			continue
		}
		closer := make([]byte, 0, len(name)+3)
		closer = append(closer, '<', '/')
		closer = append(closer, name...)
		closer = append(closer, '>')
		at := bytes.Index(text[openEnd:], closer)
		if at < 0 {
			continue
		}
		rs := openEnd + at
		out = append(out, pairMatch{i, openEnd, rs, rs + len(closer)})
	}
	return out
}

// parseOpenTag parses an opening tag starting at text[i] == '<'. It
// returns the tag name and the offset just past the closing '>', or -1
// when i does not start a valid opener (including "</...").
func parseOpenTag(text []byte, i int) ([]byte, int) {
	j := i + 1
	for j < len(text) && isTagNameByte(text[j]) {
		j++
	}
	if j == i+1 {
		return nil, -1
	}
	name := text[i+1 : j]
	for k := j; k < len(text); k++ {
		switch text[k] {
		case '>':
			return name, k + 1
		case '<':
			return nil, -1
		}
	}
	return nil, -1
}

func isTagNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// funcallMatcher matches function calls: a dotted identifier run, its
// opening paren as the left part, and the paren balancing it as the
// right part. Nested calls each produce their own candidate.
type funcallMatcher struct{}

func (funcallMatcher) pairs(text []byte) []pairMatch {
	var out []pairMatch
	for i := 0; i < len(text); i++ {
		if text[i] != '(' {
			continue
		}
		s := i
		for s > 0 && isFuncNameByte(text[s-1]) {
			s--
		}
		for s < i && !isNameStartByte(text[s]) {
			s++
		}
		if s == i {
			continue
		}
		closeAt := matchParen(text, i)
		if closeAt < 0 {
			continue
		}
		out = append(out, pairMatch{s, i + 1, closeAt, closeAt + 1})
	}
	return out
}

// matchParen returns the offset of the ')' balancing the '(' at open,
// or -1 when the text runs out first.
func matchParen(text []byte, open int) int {
	depth := 0
	for k := open; k < len(text); k++ {
		switch text[k] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

func isFuncNameByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isNameStartByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// literalMatcher pairs every occurrence of the left literal with the
// nearest right occurrence after it. This is the explicit shortest-match
// scan used for interactive surroundings.
type literalMatcher struct {
	left  []byte
	right []byte
}

func (m literalMatcher) pairs(text []byte) []pairMatch {
	if len(m.left) == 0 || len(m.right) == 0 {
		return nil
	}
	var out []pairMatch
	for i := 0; i+len(m.left) <= len(text); i++ {
		if !bytes.HasPrefix(text[i:], m.left) {
			continue
		}
		le := i + len(m.left)
		at := bytes.Index(text[le:], m.right)
		if at < 0 {
			continue
		}
		rs := le + at
		out = append(out, pairMatch{i, le, rs, rs + len(m.right)})
	}
	return out
}
