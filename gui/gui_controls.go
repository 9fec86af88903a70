package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Display mode labels shown in the radio group. The handler maps them back
// to pipeline modes.
const (
	ModeLabelNormal    = "Detection"
	ModeLabelThreshold = "Threshold view"
	ModeLabelPadding   = "Padding view"
)

// ControlsPanel holds the threshold and padding sliders and the view-mode
// selector, in the layout style of one labeled column per control.
type ControlsPanel struct {
	container *fyne.Container

	thresholdSlider *widget.Slider
	thresholdLabel  *widget.Label
	paddingSlider   *widget.Slider
	paddingLabel    *widget.Label
	modeRadio       *widget.RadioGroup
}

// NewControlsPanel wires the controls to the given callbacks. maxPadding
// bounds the padding slider; threshold is always 0..255.
func NewControlsPanel(maxPadding int, cb Callbacks) *ControlsPanel {
	cp := &ControlsPanel{}

	cp.thresholdLabel = widget.NewLabel("Threshold: 150")
	cp.thresholdSlider = widget.NewSlider(0, 255)
	cp.thresholdSlider.SetValue(150)
	cp.thresholdSlider.OnChanged = func(v float64) {
		cp.thresholdLabel.SetText("Threshold: " + strconv.Itoa(int(v)))
		if cb.OnThreshold != nil {
			cb.OnThreshold(int(v))
		}
	}

	cp.paddingLabel = widget.NewLabel("Edge padding: 20 px")
	cp.paddingSlider = widget.NewSlider(0, float64(maxPadding))
	cp.paddingSlider.SetValue(20)
	cp.paddingSlider.OnChanged = func(v float64) {
		cp.paddingLabel.SetText("Edge padding: " + strconv.Itoa(int(v)) + " px")
		if cb.OnPadding != nil {
			cb.OnPadding(int(v))
		}
	}

	cp.modeRadio = widget.NewRadioGroup(
		[]string{ModeLabelNormal, ModeLabelThreshold, ModeLabelPadding},
		func(value string) {
			if cb.OnMode != nil {
				cb.OnMode(value)
			}
		},
	)
	cp.modeRadio.SetSelected(ModeLabelNormal)
	cp.modeRadio.Horizontal = true

	thresholdBox := container.NewVBox(cp.thresholdLabel, cp.thresholdSlider)
	paddingBox := container.NewVBox(cp.paddingLabel, cp.paddingSlider)

	cp.container = container.NewVBox(
		container.NewGridWithColumns(2, thresholdBox, paddingBox),
		cp.modeRadio,
	)
	return cp
}

// Container returns the panel's widget tree.
func (cp *ControlsPanel) Container() *fyne.Container {
	return cp.container
}
