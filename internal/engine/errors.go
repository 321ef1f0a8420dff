package engine

import "github.com/rotisserie/eris"

// Run-terminal conditions. Every one ends the run cleanly with no output
// and no log mutation; none of them crash the process. Callers classify
// with eris.Is.
var (
	// ErrDataUnavailable: a required dataset is missing, empty, or
	// unparseable. The run is a no-op, not a process failure.
	ErrDataUnavailable = eris.New("required data unavailable")

	// ErrNoCandidate: an analyzer ran but found nothing notable (empty
	// sample, retry budget exhausted, empty index).
	ErrNoCandidate = eris.New("no story candidate found")

	// ErrDuplicateCandidate: the dedup gate rejected the candidate. From
	// the operator's perspective this is a success.
	ErrDuplicateCandidate = eris.New("candidate already published")

	// ErrNarrative: the external generator failed or returned unusable
	// output. Nothing is persisted; a half-formed entry never reaches the
	// log.
	ErrNarrative = eris.New("narrative generation failed")
)

// Benign reports whether err is an expected no-output outcome rather than
// an operational failure.
func Benign(err error) bool {
	return eris.Is(err, ErrDuplicateCandidate) || eris.Is(err, ErrNoCandidate)
}
