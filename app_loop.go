package main

import (
	"image"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"ftir-blobtrack/pipeline"
)

// frameSource yields one frame per trigger cycle. *capture.Grabber is the
// production source; the error contract is its ErrNoFrame one.
type frameSource interface {
	Next() (*image.RGBA, error)
}

// frameLoop is the periodic trigger: one tick requests one frame, and that
// frame runs through the whole pipeline before the loop waits again. A
// cycle with no frame is abandoned wholesale and nothing is published, so
// the previous display output stays on screen.
type frameLoop struct {
	source  frameSource
	pipe    *pipeline.Pipeline
	store   *pipeline.Store
	ticker  *clock.Ticker
	publish func(result pipeline.Result, status string)

	stop chan struct{}
	done chan struct{}

	processed atomic.Uint64
	skipped   atomic.Uint64
}

// newFrameLoop wires a loop over the given source. A nil source is legal
// and makes every cycle a no-op; the device-unavailable path uses it.
// The ticker starts here, before run, so no early tick is ever lost.
func newFrameLoop(source frameSource, pipe *pipeline.Pipeline, store *pipeline.Store, clk clock.Clock, publish func(pipeline.Result, string)) *frameLoop {
	return &frameLoop{
		source:  source,
		pipe:    pipe,
		store:   store,
		ticker:  clk.Ticker(framePeriod),
		publish: publish,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// run blocks until halt is called. Results reach publish in processing
// order because each cycle completes before the next tick is consumed.
func (fl *frameLoop) run() {
	defer close(fl.done)
	defer fl.ticker.Stop()

	for {
		select {
		case <-fl.stop:
			return
		case <-fl.ticker.C:
		}

		if fl.source == nil {
			continue
		}
		cfg := fl.store.Snapshot()
		frame, err := fl.source.Next()
		if err != nil {
			fl.skipped.Add(1)
			continue
		}
		result, err := fl.pipe.Process(frame, cfg)
		if err != nil {
			fl.skipped.Add(1)
			continue
		}
		status := statusLine(len(result.Ellipses), fl.processed.Add(1), fl.skipped.Load())
		fl.publish(result, status)
	}
}

// halt stops the loop and waits for the in-flight cycle to finish, so the
// counters are settled when it returns. Safe to call more than once.
func (fl *frameLoop) halt() {
	select {
	case <-fl.stop:
	default:
		close(fl.stop)
	}
	<-fl.done
}

func (fl *frameLoop) stats() (processed, skipped uint64) {
	return fl.processed.Load(), fl.skipped.Load()
}
