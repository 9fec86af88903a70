package main

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"ftir-blobtrack/capture"
	"ftir-blobtrack/gui"
	"ftir-blobtrack/pipeline"
)

const (
	AppName      = "FTIR BlobTrack"
	AppID        = "com.ftir.blobtrack"
	CameraDevice = 0

	// framePeriod is the trigger cadence; the pipeline is fast enough for
	// camera rate, and a slow frame simply delays the next tick's work.
	framePeriod = 33 * time.Millisecond

	// paddingSliderMax bounds the UI control; the pipeline clamps against
	// the real frame height per frame.
	paddingSliderMax = 240
)

// BlobTrackApp wires the camera, the detection pipeline and the GUI into
// the frame-synchronous trigger loop.
type BlobTrackApp struct {
	fyneApp fyne.App
	window  fyne.Window
	mainGUI *gui.MainInterface

	grabber  *capture.Grabber
	store    *pipeline.Store
	loop     *frameLoop
	log      zerolog.Logger
	stopOnce sync.Once
}

// NewBlobTrackApp builds the application on the given clock. A camera that
// fails to open is reported once; the app still starts and simply never
// receives frames.
func NewBlobTrackApp(log zerolog.Logger, clk clock.Clock) *BlobTrackApp {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	bt := &BlobTrackApp{
		fyneApp: fyneApp,
		window:  window,
		store:   pipeline.NewStore(pipeline.DefaultConfig()),
		log:     log.With().Str("component", "app").Logger(),
	}

	bt.mainGUI = gui.NewMainInterface(window, paddingSliderMax, gui.Callbacks{
		OnThreshold: bt.handleThresholdChange,
		OnPadding:   bt.handlePaddingChange,
		OnMode:      bt.handleModeChange,
	})

	var source frameSource
	grabber, err := capture.Open(CameraDevice, log)
	if err != nil {
		bt.log.Error().Err(err).Msg("camera unavailable, running without frames")
		bt.mainGUI.UpdateStatus("camera unavailable: " + err.Error())
	} else {
		bt.grabber = grabber
		source = grabber
	}

	bt.loop = newFrameLoop(source, pipeline.New(log), bt.store, clk, bt.publish)

	window.SetContent(bt.mainGUI.Container())
	window.SetCloseIntercept(func() {
		bt.shutdown()
		window.Close()
	})
	return bt
}

// Run starts the frame loop and blocks on the fyne event loop.
func (bt *BlobTrackApp) Run() {
	go bt.loop.run()
	bt.window.ShowAndRun()
}

// publish hands one result to the display sink on the event goroutine.
// fyne.Do queues without blocking, so the frame loop is never held up by
// the event loop.
func (bt *BlobTrackApp) publish(result pipeline.Result, status string) {
	fyne.Do(func() {
		bt.mainGUI.UpdateDisplay(result.Display)
		bt.mainGUI.UpdateStatus(status)
	})
}

func (bt *BlobTrackApp) shutdown() {
	bt.stopOnce.Do(func() {
		bt.loop.halt()
		if bt.grabber != nil {
			if err := bt.grabber.Close(); err != nil {
				bt.log.Warn().Err(err).Msg("camera close failed")
			}
		}
		processed, skipped := bt.loop.stats()
		bt.log.Info().
			Uint64("processed", processed).
			Uint64("skipped", skipped).
			Msg("frame loop stopped")
	})
}
