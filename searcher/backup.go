package searcher

// backup records score on the leaf, then on each ancestor along with the
// opponent action taken there. It stops at the root or when the path runs out.
func backup(leaf *Node, score float64, path []PathEntry) {
	leaf.record(score)

	node := leaf
	for i := len(path) - 1; i >= 0; i-- {
		parent := node.parent
		if parent == nil {
			return
		}
		parent.recordOpponent(score, path[i].fingerprint())
		node = parent
	}
}
