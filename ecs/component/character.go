package component

// CharacterMovement is the movement state of a character. The controller
// operations in system.CharacterModel are the only writers.
type CharacterMovement struct {
	Speed float64

	MoveX   float64
	MoveY   float64
	FacingX float64
	FacingY float64

	Frozen    bool
	Attacking bool

	PushX    float64
	PushY    float64
	PushTime float64

	// LastDirectionFrame is the SimClock frame on which a nonzero direction
	// was last accepted. Frames start at 1, so zero means never.
	LastDirectionFrame uint64

	PickingUp    ItemType
	PickupVisual uint64
}

var CharacterMovementComponent = NewComponent[CharacterMovement]()

// Equipment holds the items a character has equipped and the entities
// showing them.
type Equipment struct {
	Weapon       ItemType
	Shield       ItemType
	WeaponVisual uint64
	ShieldVisual uint64
}

var EquipmentComponent = NewComponent[Equipment]()

// Attack is the listener-side state of an attack in progress.
type Attack struct {
	// Frames is how long an attack lasts in unpaused frames.
	Frames int
	// Remaining counts down while an attack is active.
	Remaining int
}

var AttackComponent = NewComponent[Attack]()
