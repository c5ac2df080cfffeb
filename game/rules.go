package game

type Rules interface {
	// Damage dealt by one hit of technique t, before critical multipliers
	Damage(attacker, defender *Combatant, t Technique) int
	CritChance() float64
	CritMultiplier() float64
	// MovesFirst reports whether side one's active combatant acts before side two's
	MovesFirst(one, two *Combatant) bool
}
