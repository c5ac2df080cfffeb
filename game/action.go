package game

// Kind tells apart the three shapes an action can take.
type Kind int

const (
	None Kind = iota // Pass, only legal while the other side is forced to switch
	Use              // Use one of the active combatant's techniques
	Switch           // Bring another team member in
)

// Action is what a side chooses for a turn. Name is the technique for Use
// and the incoming combatant for Switch. Actions are comparable and used as
// map keys.
type Action struct {
	Kind Kind
	Name string
}

// Pass is the only None action.
var Pass = Action{Kind: None}

func UseTechnique(name string) Action {
	return Action{Kind: Use, Name: name}
}

func SwitchTo(name string) Action {
	return Action{Kind: Switch, Name: name}
}

func (a Action) IsSwitch() bool {
	return a.Kind == Switch
}

func (a Action) IsNone() bool {
	return a.Kind == None
}

// String returns the label used when reporting search results.
func (a Action) String() string {
	switch a.Kind {
	case Use:
		return a.Name
	case Switch:
		return "switch " + a.Name
	default:
		return "none"
	}
}

// EffectKind describes a single mutation of a state.
type EffectKind int

const (
	Damage EffectKind = iota
	SwitchIn
)

// Effect is one reversible mutation. For Damage, Amount is the HP removed from
// team member Slot of Side. For SwitchIn, Slot becomes active and From holds
// the slot it replaced.
type Effect struct {
	Kind   EffectKind
	Side   Side
	Slot   int
	Amount int
	From   int
}

// Outcome is one weighted resolution of an action pair. Weights of all
// outcomes for the same pair sum to 1.
type Outcome struct {
	Weight  float64
	Effects []Effect
}
