package surround

import "fmt"

// Method selects how candidates are chosen relative to the reference
// position when no covering candidate exists.
type Method int

const (
	// Cover accepts only candidates that contain the reference position.
	Cover Method = iota
	// CoverOrNext falls back to the nearest candidate after the reference.
	CoverOrNext
	// CoverOrPrev falls back to the nearest candidate before the reference.
	CoverOrPrev
	// CoverOrNearest falls back to whichever neighbor is closer.
	CoverOrNearest
)

func (m Method) String() string {
	switch m {
	case Cover:
		return "cover"
	case CoverOrNext:
		return "cover_or_next"
	case CoverOrPrev:
		return "cover_or_prev"
	case CoverOrNearest:
		return "cover_or_nearest"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a config-style name into a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "cover":
		return Cover, nil
	case "cover_or_next":
		return CoverOrNext, nil
	case "cover_or_prev":
		return CoverOrPrev, nil
	case "cover_or_nearest":
		return CoverOrNearest, nil
	}
	return Cover, fmt.Errorf("unknown search method %q", name)
}
