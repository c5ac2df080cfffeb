package gamemaster

import (
	"errors"
	"fmt"
	"pokey/game"
	"pokey/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrGameOver      = errors.New("game is over")
)

// Update is one resolved turn.
type Update struct {
	Turn    int
	One     game.Action
	Two     game.Action
	Outcome game.Outcome
	Hash    uint64 // State hash after the turn
}

// Referee owns the real duel. It checks both sides' actions and resolves
// them into one sampled outcome per turn.
type Referee struct {
	state   *game.Duel
	rng     *rand.Rand
	updates []Update
}

func NewReferee(state *game.Duel, seed uint64) *Referee {
	return &Referee{
		state: state.Copy(),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// State returns a copy of the current duel.
func (r *Referee) State() *game.Duel {
	return r.state.Copy()
}

func (r *Referee) Updates() []Update {
	return r.updates
}

func (r *Referee) GameOver() bool {
	return r.state.Terminal() != 0
}

// Winner returns the winning side's name, or an empty string while the duel
// goes on.
func (r *Referee) Winner() string {
	switch result := r.state.Terminal(); {
	case result > 0:
		return game.SideOne.String()
	case result < 0:
		return game.SideTwo.String()
	}
	return ""
}

// Play resolves one turn where side one plays one and side two plays two.
func (r *Referee) Play(one, two game.Action) (Update, error) {
	if r.GameOver() {
		return Update{}, ErrGameOver
	}

	own, opp := r.state.Options()
	if !lo.Contains(own, one) {
		return Update{}, fmt.Errorf("%w: side %s cannot play %s", ErrIllegalAction, game.SideOne, one)
	}
	if !lo.Contains(opp, two) {
		return Update{}, fmt.Errorf("%w: side %s cannot play %s", ErrIllegalAction, game.SideTwo, two)
	}

	outcome := searcher.SampleOutcome(r.state.Outcomes(one, two, true), r.rng)
	r.state.Apply(outcome)
	update := Update{
		Turn:    r.state.Turn,
		One:     one,
		Two:     two,
		Outcome: outcome,
		Hash:    r.state.Hash(),
	}
	r.updates = append(r.updates, update)
	return update, nil
}

// Undo reverts the latest turn. It reports false when there is nothing to undo.
func (r *Referee) Undo() bool {
	if len(r.updates) == 0 {
		return false
	}
	last := r.updates[len(r.updates)-1]
	r.state.Reverse(last.Outcome)
	r.updates = r.updates[:len(r.updates)-1]
	return true
}
