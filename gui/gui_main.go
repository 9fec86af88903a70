package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MainInterface owns the display canvas and the tuning controls. It is the
// application's display sink and configuration provider; the frame loop
// never touches widgets directly.
type MainInterface struct {
	window    fyne.Window
	display   *canvas.Image
	controls  *ControlsPanel
	status    *widget.Label
	container *fyne.Container
}

// Callbacks carries the control-change handlers into the interface. Each
// fires on the fyne event goroutine whenever the operator moves a control.
type Callbacks struct {
	OnThreshold func(int)
	OnPadding   func(int)
	OnMode      func(string)
}

// NewMainInterface builds the window content: the live view on top, the
// controls row underneath.
func NewMainInterface(window fyne.Window, maxPadding int, cb Callbacks) *MainInterface {
	placeholder := image.NewRGBA(image.Rect(0, 0, 640, 480))
	display := canvas.NewImageFromImage(placeholder)
	display.FillMode = canvas.ImageFillContain
	display.SetMinSize(fyne.NewSize(640, 480))

	mi := &MainInterface{
		window:   window,
		display:  display,
		controls: NewControlsPanel(maxPadding, cb),
		status:   widget.NewLabel("waiting for camera"),
	}

	mi.container = container.NewBorder(
		nil,
		container.NewVBox(mi.controls.Container(), mi.status),
		nil, nil,
		display,
	)
	return mi
}

// Container returns the root widget tree for window.SetContent.
func (mi *MainInterface) Container() fyne.CanvasObject {
	return mi.container
}

// UpdateDisplay swaps the shown frame. Call from the fyne event goroutine
// (the frame loop wraps it in fyne.Do).
func (mi *MainInterface) UpdateDisplay(img image.Image) {
	mi.display.Image = img
	mi.display.Refresh()
}

// UpdateStatus replaces the status line under the controls.
func (mi *MainInterface) UpdateStatus(text string) {
	mi.status.SetText(text)
}
