package surround

// pick applies the tiered selection to the enumerated candidates. Tiers,
// first non-empty wins:
//
//  1. covering candidates on the reference line, minimal width
//  2. directional candidates on the reference line, nearest boundary
//  3. covering candidates anywhere in the window, minimal width
//  4. directional candidates anywhere in the window, nearest boundary
//
// Cover mode consults only tiers 1 and 3.
func pick(cands []cand, w *window, method Method) (cand, bool) {
	r := w.refOff

	if c, ok := minWidth(cands, r, func(c cand) bool { return c.local(w) }); ok {
		return c, true
	}
	if method != Cover {
		if c, ok := directional(cands, r, method, func(c cand) bool { return c.local(w) }); ok {
			return c, true
		}
	}
	if c, ok := minWidth(cands, r, func(cand) bool { return true }); ok {
		return c, true
	}
	if method != Cover {
		if c, ok := directional(cands, r, method, func(cand) bool { return true }); ok {
			return c, true
		}
	}
	return cand{}, false
}

// minWidth returns the narrowest covering candidate passing keep. Ties
// resolve to the first in scan order.
func minWidth(cands []cand, r int, keep func(cand) bool) (cand, bool) {
	var best cand
	found := false
	for _, c := range cands {
		if !c.covering(r) || !keep(c) {
			continue
		}
		if !found || c.width() < best.width() {
			best, found = c, true
		}
	}
	return best, found
}

// directional returns the candidate nearest to the reference in the
// method's direction, among those passing keep. For CoverOrNearest both
// directions compete on boundary distance, with width breaking ties.
func directional(cands []cand, r int, method Method, keep func(cand) bool) (cand, bool) {
	distance := func(c cand) (int, bool) {
		switch method {
		case CoverOrPrev:
			if c.previous(r) {
				return r - (c.re - 1), true
			}
		case CoverOrNext:
			if c.next(r) {
				return c.ls - r, true
			}
		case CoverOrNearest:
			if c.previous(r) {
				return r - (c.re - 1), true
			}
			if c.next(r) {
				return c.ls - r, true
			}
		}
		return 0, false
	}

	var best cand
	bestDist := 0
	found := false
	for _, c := range cands {
		if !keep(c) {
			continue
		}
		d, ok := distance(c)
		if !ok {
			continue
		}
		if !found || d < bestDist || (d == bestDist && c.width() < best.width()) {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}
