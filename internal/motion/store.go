package motion

// Layout describes the track geometry in abstract layout units.
// The thumb is square, so its width is the track height.
type Layout struct {
	TrackWidth   float64
	Height       float64
	Padding      float64
	BorderRadius float64
}

// ThumbWidth returns the width of the thumb
func (l Layout) ThumbWidth() float64 {
	return l.Height
}

// ScrollDistance returns how far the thumb can travel inside the track
func (l Layout) ScrollDistance() float64 {
	d := l.TrackWidth - l.ThumbWidth() - 2*l.Padding
	if d < 0 {
		return 0
	}
	return d
}

// Store holds the thumb offset and everything derived from it.
// All writes are clamped to [0, ScrollDistance].
type Store struct {
	layout         Layout
	scrollDistance float64
	offset         float64
}

// NewStore creates a store at rest for the given layout
func NewStore(layout Layout) *Store {
	return &Store{
		layout:         layout,
		scrollDistance: layout.ScrollDistance(),
	}
}

// Layout returns the current layout
func (s *Store) Layout() Layout {
	return s.layout
}

// SetLayout replaces the layout, recomputing the scroll distance and
// re-clamping the offset into the new range.
func (s *Store) SetLayout(layout Layout) {
	s.layout = layout
	s.scrollDistance = layout.ScrollDistance()
	s.offset = clamp(s.offset, 0, s.scrollDistance)
}

// Offset returns the current horizontal displacement of the thumb
func (s *Store) Offset() float64 {
	return s.offset
}

// ScrollDistance returns the maximum offset
func (s *Store) ScrollDistance() float64 {
	return s.scrollDistance
}

// SetOffset clamps v into range, stores it and returns the stored value
func (s *Store) SetOffset(v float64) float64 {
	s.offset = clamp(v, 0, s.scrollDistance)
	return s.offset
}

// AtEnd reports whether the thumb sits at the far end of the track.
// A zero-length track never reaches its end.
func (s *Store) AtEnd() bool {
	return s.scrollDistance > 0 && s.offset == s.scrollDistance
}

// AtRest reports whether the thumb is back at its start position
func (s *Store) AtRest() bool {
	return s.offset == 0
}

// Progress returns the offset normalised to [0,1]
func (s *Store) Progress() float64 {
	if s.scrollDistance == 0 {
		return 0
	}
	return Interpolate(s.offset, 0, s.scrollDistance, 0, 1)
}

// LabelOpacity fades the label out as the thumb advances, from 0.99 at
// rest to 0 at the end.
func (s *Store) LabelOpacity() float64 {
	if s.scrollDistance == 0 {
		return 0.99
	}
	return Interpolate(s.offset, 0, s.scrollDistance, 0.99, 0)
}

// Interpolate maps x from [inMin,inMax] onto [outMin,outMax], clamping
// the result to the output range.
func Interpolate(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := clamp((x-inMin)/(inMax-inMin), 0, 1)
	return outMin + t*(outMax-outMin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
