package galaga

// ScoreTracker accumulates points from score events.
type ScoreTracker struct {
	total int
	kills int
}

// NewScoreTracker returns a tracker at zero.
func NewScoreTracker() *ScoreTracker {
	t := &ScoreTracker{}
	t.Reset()
	return t
}

// Reset sets the total to zero and returns it.
func (t *ScoreTracker) Reset() int {
	t.total = 0
	t.kills = 0
	return t.total
}

// Apply folds events into the total and returns it. Non-positive points are
// ignored so the total never decreases.
func (t *ScoreTracker) Apply(events []ScoreEvent) int {
	for _, ev := range events {
		if ev.Points <= 0 {
			continue
		}
		t.total += ev.Points
		t.kills++
	}
	return t.total
}

// Total returns the current score.
func (t *ScoreTracker) Total() int {
	return t.total
}

// Kills returns the number of scoring events applied.
func (t *ScoreTracker) Kills() int {
	return t.kills
}
