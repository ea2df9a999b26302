package surround

import "sort"

// Candidate pairs the left and right delimiter spans of one surrounding
// occurrence in the document.
type Candidate struct {
	Left  Span
	Right Span
}

// cand carries a candidate's window offsets for relation and width math.
// Parts are half-open; the inclusive end of the whole candidate is re-1.
type cand struct {
	ls, le int
	rs, re int
}

func (c cand) width() int { return c.re - c.ls }

// covering reports whether the reference offset lies on or between the
// candidate's outer boundaries.
func (c cand) covering(r int) bool { return c.ls <= r && r < c.re }

// previous reports whether the candidate ends at or before the reference.
func (c cand) previous(r int) bool { return c.re-1 <= r }

// next reports whether the candidate starts at or after the reference.
func (c cand) next(r int) bool { return c.ls >= r }

// local reports whether the whole candidate lies on the reference line.
func (c cand) local(w *window) bool {
	return w.position(c.ls).Line == w.refLine && w.position(c.re-1).Line == w.refLine
}

// enumerate runs the matcher over the window and returns every valid,
// non-degenerate candidate in left-to-right scan order. That order is
// the deterministic tie-break for equal-width, equal-distance picks.
func enumerate(m Matcher, w *window) []cand {
	raw := m.pairs(w.text)
	out := make([]cand, 0, len(raw))
	for _, p := range raw {
		if p.ls >= p.le || p.rs >= p.re || p.le > p.rs {
			continue
		}
		if p.re > len(w.text) {
			continue
		}
		out = append(out, cand(p))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ls != b.ls {
			return a.ls < b.ls
		}
		if a.rs != b.rs {
			return a.rs < b.rs
		}
		if a.le != b.le {
			return a.le < b.le
		}
		return a.re < b.re
	})
	return out
}

// export converts window offsets to document spans.
func (c cand) export(w *window) Candidate {
	return Candidate{
		Left:  Span{From: w.position(c.ls), To: w.position(c.le - 1)},
		Right: Span{From: w.position(c.rs), To: w.position(c.re - 1)},
	}
}
