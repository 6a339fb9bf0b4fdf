package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"golang.org/x/image/colornames"
)

type RenderSystem struct {
	solids map[solidKey]*ebiten.Image
}

type solidKey struct {
	w, h int
	c    color.RGBA
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{solids: make(map[solidKey]*ebiten.Image)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent, component.SpriteComponent)
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Hidden {
			continue
		}

		img := r.imageFor(s)
		if img == nil {
			continue
		}
		if s.UseSource {
			if sub, ok := img.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)

		screen.DrawImage(img, op)
	}
}

// imageFor returns the sprite image, building a cached solid rectangle for
// sprites defined by size and color only.
func (r *RenderSystem) imageFor(s *component.Sprite) *ebiten.Image {
	if s.Image != nil {
		return s.Image
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil
	}
	c := s.Color
	if c == nil {
		c = colornames.Magenta
	}
	key := solidKey{w: s.Width, h: s.Height, c: color.RGBAModel.Convert(c).(color.RGBA)}
	img, ok := r.solids[key]
	if !ok {
		img = ebiten.NewImage(s.Width, s.Height)
		img.Fill(c)
		r.solids[key] = img
	}
	return img
}
