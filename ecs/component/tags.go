package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ItemVisualTag marks entities spawned to show an item on a character.
type ItemVisualTag struct {
	Item ItemType
}

var ItemVisualTagComponent = NewComponent[ItemVisualTag]()
