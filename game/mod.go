package game

// Side identifies one of the two battling sides. SideOne is always the side
// the searcher plays for.
type Side int

const (
	SideOne Side = iota
	SideTwo
)

func (s Side) String() string {
	if s == SideOne {
		return "one"
	}
	return "two"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// State is the contract a rules engine offers the searcher. Unlike a
// turn-based game, both sides pick an action every turn and the pair is
// resolved into weighted outcomes. States are mutable: Apply and Reverse edit
// the receiver in place, so callers Clone before simulating.
type State interface {
	Clone() State
	// Options returns the legal actions of side one and side two
	Options() (own []Action, opp []Action)
	// Outcomes resolves an action pair into weighted outcomes. When branch is
	// set, secondary random events (e.g. critical hits) get their own outcome.
	Outcomes(own, opp Action, branch bool) []Outcome
	Apply(Outcome)
	Reverse(Outcome)
	// Evaluate scores the position from side one's perspective, unbounded.
	Evaluate() float64
	// Terminal is 0 while the battle goes on, positive if side one won and
	// negative otherwise.
	Terminal() float64
	// Active names the combatant currently fielded by a side
	Active(Side) string
}

// Evaluate scores a state from side one's perspective. Larger is better, no
// particular scale is required.
type Evaluate func(State) float64

// EvaluateState defers to the state's own static evaluation.
func EvaluateState(s State) float64 {
	return s.Evaluate()
}
