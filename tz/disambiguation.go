package tz

import "fmt"

// Disambiguation selects how a local time inside a gap or a fold resolves
// to a single instant. The zero value is Compatible.
type Disambiguation uint8

const (
	// Compatible picks the earlier instant in a fold and the
	// post-transition interpretation of a gap.
	Compatible Disambiguation = iota
	// Earlier always picks the earlier interpretation.
	Earlier
	// Later always picks the later interpretation.
	Later
	// Reject fails with ErrAmbiguousTime for gaps and folds.
	Reject
)

func (d Disambiguation) String() string {
	switch d {
	case Compatible:
		return "compatible"
	case Earlier:
		return "earlier"
	case Later:
		return "later"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("<undefined disambiguation (%d)>", d)
	}
}

// ParseDisambiguation maps the textual policy names to their values.
func ParseDisambiguation(s string) (Disambiguation, error) {
	switch s {
	case "compatible":
		return Compatible, nil
	case "earlier":
		return Earlier, nil
	case "later":
		return Later, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("invalid disambiguation %q", s)
	}
}
