package game

// Timer counts elapsed seconds against a duration. A repeating timer wraps
// around and may finish several times in one tick; a one-shot timer stops
// at its duration.
type Timer struct {
	Duration  float64
	Repeating bool

	elapsed  float64
	finished int
	done     bool
}

func NewRepeatingTimer(seconds float64) Timer {
	return Timer{Duration: seconds, Repeating: true}
}

func NewTimer(seconds float64) Timer {
	return Timer{Duration: seconds}
}

func (t *Timer) Tick(dt float64) {
	t.finished = 0
	if t.Duration <= 0 || dt <= 0 {
		return
	}
	if !t.Repeating {
		if t.done {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.elapsed = t.Duration
			t.done = true
			t.finished = 1
		}
		return
	}

	t.elapsed += dt
	for t.elapsed >= t.Duration {
		t.elapsed -= t.Duration
		t.finished++
	}
}

// JustFinished reports whether the last Tick completed at least one lap.
func (t *Timer) JustFinished() bool {
	return t.finished > 0
}

func (t *Timer) TimesFinishedThisTick() int {
	return t.finished
}

func (t *Timer) Elapsed() float64 {
	return t.elapsed
}

// Fraction is elapsed time over duration, in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return t.elapsed / t.Duration
}

func (t *Timer) Finished() bool {
	return t.done
}
