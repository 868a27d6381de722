package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// toolAction is one icon button of a panel toolbar.
type toolAction struct {
	icon    fyne.Resource
	tooltip string
	tapped  func()
}

// newToolbar lays out icon-only buttons that show their tooltip on hover.
// The returned buttons line up with actions so callers can enable and
// disable them later.
func newToolbar(actions ...toolAction) (*fyne.Container, []*ttwidget.Button) {
	buttons := make([]*ttwidget.Button, len(actions))
	objects := make([]fyne.CanvasObject, len(actions))
	for i, a := range actions {
		btn := ttwidget.NewButtonWithIcon("", a.icon, a.tapped)
		btn.SetToolTip(a.tooltip)
		buttons[i] = btn
		objects[i] = btn
	}
	return container.NewHBox(objects...), buttons
}
