package searcher

import "pokey/game"

// Fingerprint tells apart the same nominal action issued by different
// combatants. It keys the opponent statistics of a node.
type Fingerprint struct {
	Action game.Action
	Entity string // Combatant issuing the action
	Switch bool
}

func fingerprint(action game.Action, entity string) Fingerprint {
	return Fingerprint{Action: action, Entity: entity, Switch: action.IsSwitch()}
}

// PathEntry records the opponent's side of one step of a tree walk.
type PathEntry struct {
	Opponent game.Action
	Active   string // Opponent combatant fielded when the action was chosen
}

func (p PathEntry) fingerprint() Fingerprint {
	return fingerprint(p.Opponent, p.Active)
}
