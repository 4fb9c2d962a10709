package main

import (
	"image/color"
	"strings"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PromptUI shows the visible interaction prompts in a panel at the bottom of
// the screen.
type PromptUI struct {
	ui    *ebitenui.UI
	panel *widget.Container
	label *widget.Text
}

func NewPromptUI() *PromptUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	label := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xf2, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	panel.AddChild(label)
	panel.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Bottom: 48}),
		)),
	)
	root.AddChild(panel)

	return &PromptUI{ui: &ebitenui.UI{Container: root}, panel: panel, label: label}
}

// Sync copies the visible prompt texts from the world into the panel.
func (p *PromptUI) Sync(w *ecs.World) {
	var lines []string
	ecs.ForEach(w, component.PromptComponent.Kind(), func(_ ecs.Entity, prompt *component.Prompt) {
		if prompt.Visible && prompt.Text != "" {
			lines = append(lines, prompt.Text)
		}
	})

	p.label.Label = strings.Join(lines, "\n")
	if len(lines) == 0 {
		p.panel.GetWidget().Visibility = widget.Visibility_Hide
	} else {
		p.panel.GetWidget().Visibility = widget.Visibility_Show
	}
	p.ui.Update()
}

func (p *PromptUI) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}
