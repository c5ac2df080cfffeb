package searcher

import "time"

type StopReason int

const (
	StopNone       StopReason = 0
	StopIterations StopReason = 1 // Iteration budget spent
	StopMovetime   StopReason = 2 // Time budget spent
	StopCeiling    StopReason = 4 // Root reached MaxVisits
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "none"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopIterations, "iterations"},
		{StopMovetime, "movetime"},
		{StopCeiling, "ceiling"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}
	return result
}

// limits is the stop condition of one tree.
type limits struct {
	iterations int
	capped     bool // Whether iterations applies at all
	deadline   time.Time
}

func newLimits(iterations int, duration time.Duration, workers int) limits {
	l := limits{}
	if iterations > 0 {
		l.capped = true
		l.iterations = iterations / workers
	}
	if duration > 0 {
		l.deadline = time.Now().Add(duration)
	}
	return l
}

// check reports every limit reached by a tree whose root has visits visits.
func (l limits) check(visits int) StopReason {
	reason := StopNone
	if l.capped && visits >= l.iterations {
		reason |= StopIterations
	}
	if !l.deadline.IsZero() && !time.Now().Before(l.deadline) {
		reason |= StopMovetime
	}
	if visits >= MaxVisits {
		reason |= StopCeiling
	}
	return reason
}
