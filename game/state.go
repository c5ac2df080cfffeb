package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Duel is a small simultaneous-turn battle between two teams. Each turn both
// sides pick an action, switches resolve first, then techniques in speed
// order. Techniques can miss, and hits can be critical, which is where the
// weighted outcomes come from.
type Duel struct {
	Rules Rules
	Teams [2]Team
	Turn  int
}

func NewDuel(rules Rules, one, two Team) *Duel {
	return &Duel{
		Rules: rules,
		Teams: [2]Team{one.copy(), two.copy()},
	}
}

// NewStandardDuel sets up the standard teams under the standard rules.
func NewStandardDuel() *Duel {
	one, two := CreateTeams()
	return NewDuel(NewStandardRules(), one, two)
}

func (d *Duel) Clone() State {
	return d.Copy()
}

func (d *Duel) Copy() *Duel {
	return &Duel{
		Rules: d.Rules, // Rules are immutable
		Teams: [2]Team{d.Teams[0].copy(), d.Teams[1].copy()},
		Turn:  d.Turn,
	}
}

// Mirror returns a copy seen from side two's point of view.
func (d *Duel) Mirror() *Duel {
	return &Duel{
		Rules: d.Rules,
		Teams: [2]Team{d.Teams[1].copy(), d.Teams[0].copy()},
		Turn:  d.Turn,
	}
}

func (d *Duel) Active(side Side) string {
	return d.Teams[side].active().Name
}

func (d *Duel) Terminal() float64 {
	// Side one losing its last member counts as a loss even if side two is
	// wiped out in the same turn
	if d.Teams[SideOne].defeated() {
		return -1
	}
	if d.Teams[SideTwo].defeated() {
		return 1
	}
	return 0
}

func (d *Duel) Options() ([]Action, []Action) {
	if d.Terminal() != 0 {
		return nil, nil
	}
	one, two := &d.Teams[SideOne], &d.Teams[SideTwo]
	oneDown, twoDown := one.active().Fainted(), two.active().Fainted()
	switch {
	case oneDown && twoDown:
		return one.switches(), two.switches()
	case oneDown: // Forced switch, the other side waits
		return one.switches(), []Action{Pass}
	case twoDown:
		return []Action{Pass}, two.switches()
	}
	return one.options(), two.options()
}

type branchState struct {
	weight  float64
	effects []Effect
	hp      [2]int // HP of each side's fielded member in this branch
	slots   [2]int
}

func (b branchState) with(weight float64) branchState {
	b.weight = weight
	return b
}

func (b branchState) hit(target Side, damage int, weight float64) branchState {
	amount := min(damage, b.hp[target])
	effects := make([]Effect, len(b.effects), len(b.effects)+1)
	copy(effects, b.effects)
	b.effects = append(effects, Effect{Kind: Damage, Side: target, Slot: b.slots[target], Amount: amount})
	b.hp[target] -= amount
	b.weight = weight
	return b
}

func (d *Duel) Outcomes(own, opp Action, branch bool) []Outcome {
	actions := [2]Action{own, opp}
	base := branchState{weight: 1}
	base.slots = [2]int{d.Teams[SideOne].Active, d.Teams[SideTwo].Active}

	// Switches happen before anything else and never branch
	for side, action := range actions {
		if !action.IsSwitch() {
			continue
		}
		slot := d.Teams[side].slot(action.Name)
		if slot < 0 || slot == base.slots[side] {
			continue
		}
		base.effects = append(base.effects, Effect{Kind: SwitchIn, Side: Side(side), Slot: slot, From: base.slots[side]})
		base.slots[side] = slot
	}
	fielded := [2]*Combatant{
		&d.Teams[SideOne].Members[base.slots[SideOne]],
		&d.Teams[SideTwo].Members[base.slots[SideTwo]],
	}
	base.hp = [2]int{fielded[SideOne].HP, fielded[SideTwo].HP}

	order := [2]Side{SideOne, SideTwo}
	if !d.Rules.MovesFirst(fielded[SideOne], fielded[SideTwo]) {
		order = [2]Side{SideTwo, SideOne}
	}

	branches := []branchState{base}
	for _, side := range order {
		if actions[side].Kind != Use {
			continue
		}
		technique, ok := d.Teams[side].technique(actions[side].Name)
		if !ok {
			continue
		}
		target := side.Other()
		damage := d.Rules.Damage(fielded[side], fielded[target], technique)
		accuracy := min(max(technique.Accuracy, 0), 1)

		next := make([]branchState, 0, len(branches)*3)
		for _, b := range branches {
			// Fainted combatants do not get to act
			if b.hp[side] <= 0 || b.hp[target] <= 0 {
				next = append(next, b)
				continue
			}
			if hitWeight := b.weight * accuracy; hitWeight > 0 {
				crit := d.Rules.CritChance()
				if branch && crit > 0 {
					critDamage := int(float64(damage) * d.Rules.CritMultiplier())
					next = append(next, b.hit(target, critDamage, hitWeight*crit))
					if crit < 1 {
						next = append(next, b.hit(target, damage, hitWeight*(1-crit)))
					}
				} else {
					next = append(next, b.hit(target, damage, hitWeight))
				}
			}
			if missWeight := b.weight * (1 - accuracy); missWeight > 0 {
				next = append(next, b.with(missWeight))
			}
		}
		branches = next
	}

	outcomes := make([]Outcome, len(branches))
	for i, b := range branches {
		outcomes[i] = Outcome{Weight: b.weight, Effects: b.effects}
	}
	return outcomes
}

func (d *Duel) Apply(o Outcome) {
	for _, e := range o.Effects {
		team := &d.Teams[e.Side]
		switch e.Kind {
		case Damage:
			team.Members[e.Slot].HP -= e.Amount
		case SwitchIn:
			team.Active = e.Slot
		}
	}
	d.Turn++
}

func (d *Duel) Reverse(o Outcome) {
	for i := len(o.Effects) - 1; i >= 0; i-- {
		e := o.Effects[i]
		team := &d.Teams[e.Side]
		switch e.Kind {
		case Damage:
			team.Members[e.Slot].HP += e.Amount
		case SwitchIn:
			team.Active = e.From
		}
	}
	d.Turn--
}

func (d *Duel) Evaluate() float64 {
	return EvaluateHealth(d)
}

// Hash identifies the dynamic part of the state (HP, fielded members, turn).
func (d *Duel) Hash() uint64 {
	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(d.Turn))
	for _, team := range d.Teams {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(team.Active))
		for _, member := range team.Members {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(member.HP)))
		}
	}
	return xxhash.Sum64(buf)
}
