package component

// Hover bobs an entity vertically around the position other systems put it
// at each frame. The phase advances per rendered frame, so it keeps moving
// while gameplay time is paused.
type Hover struct {
	Amplitude float64
	Speed     float64
	Phase     float64
}

var HoverComponent = NewComponent[Hover]()
