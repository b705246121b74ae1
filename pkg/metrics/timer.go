package metrics

import "time"

// timer records the time since its creation into a histogram.
type timer struct {
	h     Histogram
	start time.Time
}

// StartTimer starts timing an operation. The returned Timer records the
// elapsed seconds into h when ObserveDuration is called.
func StartTimer(h Histogram) Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}
