package animation

// Clip is an immutable, loaded animation. It is shared read-only by the
// action that plays it.
type Clip struct {
	Name     string
	Source   string
	Duration float64
}

// NewClip creates a clip. Non-positive durations are clamped to a single
// 60Hz frame so phase math never divides by zero.
func NewClip(name, source string, duration float64) *Clip {
	if duration <= 0 {
		duration = 1.0 / 60.0
	}
	return &Clip{Name: name, Source: source, Duration: duration}
}
