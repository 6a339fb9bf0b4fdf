package component

// AttachPoint is an offset from a character's transform where an item visual
// is placed. Offsets are given for a right-facing character.
type AttachPoint struct {
	OffsetX float64
	OffsetY float64
	Layer   int
}

// AttachPoints lists the body parts of a character. A nil point means the
// character has no such part and items for it are ignored.
type AttachPoints struct {
	Weapon *AttachPoint
	Shield *AttachPoint
	Pickup *AttachPoint
}

var AttachPointsComponent = NewComponent[AttachPoints]()

// Attachment keeps an entity glued to Parent (an ecs.Entity) at the given
// offset.
type Attachment struct {
	Parent  uint64
	OffsetX float64
	OffsetY float64
	// Mirror flips OffsetX when the parent faces left.
	Mirror bool
}

var AttachmentComponent = NewComponent[Attachment]()
