package character

// Input is the directional and action intent sampled once per frame. The
// simulation only reads it.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool
	Jump     bool
}

// Moving reports whether forward or backward intent is held.
func (in Input) Moving() bool {
	return in.Forward || in.Backward
}
