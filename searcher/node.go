package searcher

import (
	"math"
	"pokey/game"
	"sync"
)

// Node is one own-side decision point of a search tree. Children are owned
// through the children map, parent is only followed upwards during backup.
// The mutex guards the node's own fields and is never held while another
// node is locked.
type Node struct {
	sync.Mutex
	parent    *Node
	action    game.Action // Own action leading here, zero at the root
	depth     int
	children  map[game.Action]*Node
	opponent  map[Fingerprint]*OpponentStats
	visits    int
	value     float64
	lastScore float64     // Score of the latest simulation, diagnostic only
	played    Fingerprint // Opponent action of the latest walk into this node
	active    [2]string   // Fielded combatants when the node was created
}

func newNode(parent *Node, action game.Action, state game.State) *Node {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	return &Node{
		parent:   parent,
		action:   action,
		depth:    depth,
		children: make(map[game.Action]*Node),
		opponent: make(map[Fingerprint]*OpponentStats),
		active:   [2]string{state.Active(game.SideOne), state.Active(game.SideTwo)},
	}
}

func ucb1(value float64, visits, parentVisits int) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	n := float64(visits)
	return value/n + math.Sqrt(CSquared*math.Log(float64(parentVisits))/n)
}

// UCB1 scores the node for selection from a parent with parentVisits visits.
func (n *Node) UCB1(parentVisits int) float64 {
	n.Lock()
	defer n.Unlock()

	return ucb1(n.value, n.visits, parentVisits)
}

func (n *Node) Visits() int {
	n.Lock()
	defer n.Unlock()

	return n.visits
}

// Stats returns the visit count and cumulative value.
func (n *Node) Stats() (int, float64) {
	n.Lock()
	defer n.Unlock()

	return n.visits, n.value
}

func (n *Node) Action() game.Action {
	return n.action
}

func (n *Node) Depth() int {
	return n.depth
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Child returns the child reached by action, or nil if it was never expanded.
func (n *Node) Child(action game.Action) *Node {
	n.Lock()
	defer n.Unlock()

	return n.children[action]
}

// Played returns the opponent action of the latest walk into the node.
func (n *Node) Played() Fingerprint {
	n.Lock()
	defer n.Unlock()

	return n.played
}

// untried returns the first valid action without a child.
func (n *Node) untried(valid []game.Action) (game.Action, bool) {
	n.Lock()
	defer n.Unlock()

	for _, action := range valid {
		if _, ok := n.children[action]; !ok {
			return action, true
		}
	}
	return game.Action{}, false
}

// addChild expands action from the resolved state. An existing child is
// returned unchanged.
func (n *Node) addChild(action game.Action, played Fingerprint, state game.State) *Node {
	n.Lock()
	defer n.Unlock()

	if child, ok := n.children[action]; ok {
		return child
	}
	child := newNode(n, action, state)
	child.played = played
	n.children[action] = child
	return child
}

// selectChild picks the child with the highest UCB1 score among the valid
// actions. Ties go to the earliest valid action.
func (n *Node) selectChild(valid []game.Action) (game.Action, *Node, bool) {
	n.Lock()
	visits := n.visits
	candidates := make([]*Node, len(valid))
	for i, action := range valid {
		candidates[i] = n.children[action]
	}
	n.Unlock()

	bestIndex := -1
	bestScore := math.Inf(-1)
	for i, child := range candidates {
		if child == nil {
			continue
		}
		if score := child.UCB1(visits); bestIndex < 0 || score > bestScore {
			bestIndex = i
			bestScore = score
		}
	}
	if bestIndex < 0 {
		return game.Action{}, nil, false
	}
	return valid[bestIndex], candidates[bestIndex], true
}

func (n *Node) setPlayed(played Fingerprint) {
	n.Lock()
	defer n.Unlock()

	n.played = played
}

func (n *Node) record(score float64) {
	n.Lock()
	defer n.Unlock()

	n.visits++
	n.value += score
	n.lastScore = score
}

// recordOpponent records a simulation that went through the node with the
// opponent playing played.
func (n *Node) recordOpponent(score float64, played Fingerprint) {
	n.Lock()
	defer n.Unlock()

	n.visits++
	n.value += score
	stats, ok := n.opponent[played]
	if !ok {
		stats = &OpponentStats{}
		n.opponent[played] = stats
	}
	stats.Visits++
	stats.Value += score
}
