package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/avaret/nightswarm/combat"
)

var (
	uiPanelColor  = color.NRGBA{A: 200}
	uiButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	uiTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func uiFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// NewPauseUI builds the centered pause menu. Buttons use colored nine-slices
// and the built-in basic font so no theme assets need loading.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	panel := uiPanel()

	panel.AddChild(uiTitle("Paused", face))
	panel.AddChild(uiButton("Resume", face, func() {
		g.resume()
	}))
	panel.AddChild(uiButton("Quit", face, func() {
		os.Exit(0)
	}))

	return uiRoot(panel)
}

// NewUpgradeUI builds the level-up overlay: one button per offered upgrade.
func NewUpgradeUI(g *Game, kinds []combat.UpgradeKind) *ebitenui.UI {
	face := uiFace()
	panel := uiPanel()

	panel.AddChild(uiTitle(fmt.Sprintf("Level %d! Choose an upgrade", g.player.Level), face))
	for _, kind := range kinds {
		k := kind
		panel.AddChild(uiButton(upgradeLabel(k), face, func() {
			g.chooseUpgrade(k)
		}))
	}

	return uiRoot(panel)
}

// upgradeLabel describes an upgrade's effect on the button.
func upgradeLabel(kind combat.UpgradeKind) string {
	switch kind {
	case combat.UpgradeDamage:
		return "Damage +5"
	case combat.UpgradeFireRate:
		return "Fire rate +0.5/s"
	case combat.UpgradeMultiShot:
		return "Multi shot +1"
	case combat.UpgradePiercing:
		return "Piercing shots"
	case combat.UpgradeHoming:
		return "Homing +0.3"
	case combat.UpgradeRange:
		return "Target range +50"
	case combat.UpgradePattern:
		return "Next fire pattern"
	}
	return kind.String()
}

func uiTitle(text string, face ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(text, &face, uiTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func uiButton(label string, face ebtext.Face, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(uiButtonColor)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: uiTextColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func uiPanel() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(uiPanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

func uiRoot(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
