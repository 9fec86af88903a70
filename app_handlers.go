package main

import (
	"strconv"

	"ftir-blobtrack/gui"
	"ftir-blobtrack/pipeline"
)

// Control handlers run on the fyne event goroutine and only touch the
// configuration store; the frame loop picks the new values up at its next
// snapshot, never mid-frame.

func (bt *BlobTrackApp) handleThresholdChange(v int) {
	bt.store.SetThreshold(v)
	bt.log.Debug().Int("threshold", v).Msg("threshold changed")
}

func (bt *BlobTrackApp) handlePaddingChange(v int) {
	bt.store.SetPadding(v)
	bt.log.Debug().Int("padding", v).Msg("padding changed")
}

func (bt *BlobTrackApp) handleModeChange(label string) {
	mode := pipeline.ModeNormal
	switch label {
	case gui.ModeLabelThreshold:
		mode = pipeline.ModeThresholdOverlay
	case gui.ModeLabelPadding:
		mode = pipeline.ModePaddingOverlay
	}
	bt.store.SetMode(mode)
	bt.log.Debug().Str("mode", mode.String()).Msg("display mode changed")
}

func statusLine(blobs int, processed, skipped uint64) string {
	return "blobs: " + strconv.Itoa(blobs) +
		"  frames: " + strconv.FormatUint(processed, 10) +
		"  skipped: " + strconv.FormatUint(skipped, 10)
}
