package game

type StandardRules struct {
	Crit       float64
	Multiplier float64
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Crit:       1.0 / 16,
		Multiplier: 1.5,
	}
}

func (sr *StandardRules) Damage(attacker, defender *Combatant, t Technique) int {
	if t.Power <= 0 {
		return 0
	}
	defense := max(defender.Defense, 1)
	return max(t.Power*attacker.Attack/defense, 1)
}

func (sr *StandardRules) CritChance() float64 {
	return sr.Crit
}

func (sr *StandardRules) CritMultiplier() float64 {
	return sr.Multiplier
}

// Speed ties go to side one so that outcomes stay deterministic
func (sr *StandardRules) MovesFirst(one, two *Combatant) bool {
	return one.Speed >= two.Speed
}
