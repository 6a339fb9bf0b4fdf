package main

import (
	"image/color"

	"github.com/milk9111/topdown/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PickupUI is a banner naming the item the player is holding up.
type PickupUI struct {
	ui     *ebitenui.UI
	title  *widget.Text
	detail *widget.Text
	shown  bool
}

func NewPickupUI() *PickupUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	grey := color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	detail := widget.NewText(
		widget.TextOpts.Text("", &face, grey),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	// Banner along the bottom of the screen.
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(detail)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &PickupUI{
		ui:     &ebitenui.UI{Container: root},
		title:  title,
		detail: detail,
	}
}

// Show displays the banner for name. An empty name hides it.
func (p *PickupUI) Show(name, description string) {
	if p == nil {
		return
	}
	if name == "" {
		p.shown = false
		return
	}
	p.title.Label = "You got the " + name + "!"
	p.detail.Label = description
	p.shown = true
}

func (p *PickupUI) Update() {
	if p == nil || !p.shown {
		return
	}
	p.ui.Update()
}

func (p *PickupUI) Draw(screen *ebiten.Image) {
	if p == nil || !p.shown {
		return
	}
	p.ui.Draw(screen)
}
