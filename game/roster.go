package game

// Technique is something a combatant can use on its turn.
type Technique struct {
	Name     string
	Power    int
	Accuracy float64 // In [0, 1]
}

type Combatant struct {
	Name       string
	HP         int
	MaxHP      int
	Attack     int
	Defense    int
	Speed      int
	Techniques []Technique
}

func (c *Combatant) Fainted() bool {
	return c.HP <= 0
}

// Team is a side's roster and which member is currently fielded.
type Team struct {
	Members []Combatant
	Active  int // Index into Members
}

func (t *Team) active() *Combatant {
	return &t.Members[t.Active]
}

func (t *Team) slot(name string) int {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return i
		}
	}
	return -1
}

func (t *Team) defeated() bool {
	for i := range t.Members {
		if !t.Members[i].Fainted() {
			return false
		}
	}
	return true
}

// switches lists the healthy benched members that can come in.
func (t *Team) switches() []Action {
	actions := []Action{}
	for i := range t.Members {
		if i != t.Active && !t.Members[i].Fainted() {
			actions = append(actions, SwitchTo(t.Members[i].Name))
		}
	}
	return actions
}

// options lists every technique of the active member followed by the switches.
func (t *Team) options() []Action {
	active := t.active()
	actions := make([]Action, 0, len(active.Techniques)+len(t.Members)-1)
	for _, technique := range active.Techniques {
		actions = append(actions, UseTechnique(technique.Name))
	}
	return append(actions, t.switches()...)
}

func (t *Team) technique(name string) (Technique, bool) {
	for _, technique := range t.active().Techniques {
		if technique.Name == name {
			return technique, true
		}
	}
	return Technique{}, false
}

func (t Team) copy() Team {
	members := make([]Combatant, len(t.Members))
	copy(members, t.Members)
	return Team{Members: members, Active: t.Active}
}

func newCombatant(name string, hp, attack, defense, speed int, techniques ...Technique) Combatant {
	return Combatant{
		Name:       name,
		HP:         hp,
		MaxHP:      hp,
		Attack:     attack,
		Defense:    defense,
		Speed:      speed,
		Techniques: techniques,
	}
}

// CreateTeams returns the two standard three-member teams.
func CreateTeams() (Team, Team) {
	one := Team{Members: []Combatant{
		newCombatant("ember", 100, 12, 8, 11,
			Technique{Name: "flare", Power: 30, Accuracy: 1},
			Technique{Name: "inferno", Power: 55, Accuracy: 0.5}),
		newCombatant("tide", 120, 9, 11, 7,
			Technique{Name: "splash", Power: 25, Accuracy: 1},
			Technique{Name: "surge", Power: 40, Accuracy: 0.8}),
		newCombatant("gale", 90, 11, 7, 14,
			Technique{Name: "gust", Power: 28, Accuracy: 0.95},
			Technique{Name: "cyclone", Power: 50, Accuracy: 0.6}),
	}}
	two := Team{Members: []Combatant{
		newCombatant("boulder", 130, 10, 12, 5,
			Technique{Name: "tackle", Power: 25, Accuracy: 1},
			Technique{Name: "quake", Power: 45, Accuracy: 0.75}),
		newCombatant("volt", 85, 13, 7, 15,
			Technique{Name: "spark", Power: 30, Accuracy: 1},
			Technique{Name: "thunder", Power: 60, Accuracy: 0.5}),
		newCombatant("thorn", 105, 10, 10, 9,
			Technique{Name: "vine", Power: 28, Accuracy: 1},
			Technique{Name: "bloom", Power: 42, Accuracy: 0.85}),
	}}
	return one, two
}
