package game

// Points awarded per standing combatant, on top of its remaining health
const survivorBonus = 50.0

// EvaluateHealth tallies each side's remaining health (100 points for a full
// combatant) plus a bonus per standing combatant, and returns side one's
// total minus side two's. A knockout swings the score by about 150 points.
func EvaluateHealth(s State) float64 {
	d, ok := s.(*Duel)
	if !ok {
		panic("unexpected state type")
	}
	return d.Teams[SideOne].health() - d.Teams[SideTwo].health()
}

// EvaluateSurvivors only counts standing combatants, ignoring partial damage.
func EvaluateSurvivors(s State) float64 {
	d, ok := s.(*Duel)
	if !ok {
		panic("unexpected state type")
	}
	return 100 * float64(d.Teams[SideOne].survivors()-d.Teams[SideTwo].survivors())
}

func (t *Team) health() float64 {
	score := 0.0
	for i := range t.Members {
		member := &t.Members[i]
		if member.Fainted() || member.MaxHP <= 0 {
			continue
		}
		score += 100*float64(member.HP)/float64(member.MaxHP) + survivorBonus
	}
	return score
}

func (t *Team) survivors() int {
	count := 0
	for i := range t.Members {
		if !t.Members[i].Fainted() {
			count++
		}
	}
	return count
}
