// Package game provides the session state machine and the main loop.
package game

// TerminalState represents the overall outcome of a run.
type TerminalState int

const (
	// Ongoing means the run is still in play.
	Ongoing TerminalState = iota
	// Won means the final boss has been destroyed.
	Won
	// Lost means the player ran out of energy.
	Lost
)

// String returns a human-readable state name.
func (t TerminalState) String() string {
	switch t {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}
