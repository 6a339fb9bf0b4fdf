package component

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is drawn by RenderSystem. When Image is nil a Width x Height
// rectangle of Color is generated on first draw.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	Width      int
	Height     int
	Color      color.Color
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
