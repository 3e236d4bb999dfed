package tz

import "github.com/lockels/temporal/iso"

// TransitionInfo describes the offset regime in effect at a queried
// instant: the total offset from UTC and, when known, the transition that
// established it.
type TransitionInfo struct {
	// Offset is the total offset from UTC in whole seconds east.
	Offset int64

	// Transition is the instant at which the enclosing transition took
	// effect. It is meaningful only when TransitionKnown is true; it is
	// unknown for instants before a zone's first recorded transition.
	Transition      iso.EpochNanoseconds
	TransitionKnown bool
}

// Provider supplies transition-table answers for named time zones. The
// core holds no database of its own; any implementation backed by an
// in-memory table, compiled zone files or a remote service satisfies the
// contract.
//
// Implementations must tolerate concurrent read-only queries and answer
// consistently with a single snapshot of their database for the duration
// of one resolution call.
type Provider interface {
	// NormalizeIdentifier maps a raw zone name to its canonical form,
	// failing if the name is unknown.
	NormalizeIdentifier(name string) (string, error)

	// OffsetAndTransitionAt returns the offset regime in effect at the
	// given instant.
	OffsetAndTransitionAt(identifier string, at iso.EpochNanoseconds) (TransitionInfo, error)

	// PossibleInstantsAt returns the instants whose local reading in the
	// zone equals dt: none if dt falls in a gap, one if it is
	// unambiguous, two in ascending order if it falls in a fold.
	PossibleInstantsAt(identifier string, dt iso.DateTime) ([]iso.EpochNanoseconds, error)
}
