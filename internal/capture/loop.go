// Package capture drives the live camera view: read a frame, tint it, run
// the pipeline, show it and react to the keyboard.
package capture

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andresmejia3/tonematch/internal/palette"
	"github.com/andresmejia3/tonematch/internal/pipeline"
	"github.com/andresmejia3/tonematch/internal/snapshot"
	"github.com/andresmejia3/tonematch/internal/utils"
	"gocv.io/x/gocv"
)

// State of the live loop.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "STOPPED"
}

const (
	keyQuit = 'q'
	keySave = 's'

	// WaitKey delay in milliseconds; this is the loop's only suspension point.
	pollDelay = 1
)

// Stats summarises a finished run.
type Stats struct {
	Frames       int
	Faces        int
	Snapshots    int
	SaveFailures int
}

// Loop owns the live resources from start to finish.
type Loop struct {
	res          *Resources
	pipeline     *pipeline.Pipeline
	tinter       *pipeline.Tinter
	snapshotPath string
	save         func(path string, img gocv.Mat) error
	out          io.Writer

	state State
	stats Stats
}

// NewLoop takes ownership of res; Run releases it.
func NewLoop(res *Resources, table *palette.Table, snapshotPath string) *Loop {
	if snapshotPath == "" {
		snapshotPath = snapshot.DefaultPath
	}
	return &Loop{
		res:          res,
		pipeline:     pipeline.New(res.Detector, table),
		tinter:       pipeline.NewTinter(),
		snapshotPath: snapshotPath,
		save:         snapshot.Save,
		out:          os.Stderr,
		state:        Stopped,
	}
}

// Run processes frames until 'q', end of stream or ctx cancellation. The
// resources are released on every exit path. Frame read failures end the
// run cleanly and are not returned as errors; a frame that cannot be
// tinted, annotated or shown stops the run with that error.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		l.state = Stopped
		l.tinter.Close()
		if cerr := l.res.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	raw := gocv.NewMat()
	defer raw.Close()
	display := gocv.NewMat()
	defer display.Close()

	l.state = Running
	for l.state == Running {
		if ctx.Err() != nil {
			fmt.Fprintln(l.out, "🛑 Interrupted, shutting down...")
			l.state = Stopped
			break
		}

		if ok := l.res.Source.Read(&raw); !ok || raw.Empty() {
			fmt.Fprintln(l.out, "⚠️  Frame capture failed, stopping.")
			l.state = Stopped
			break
		}

		if err := l.tinter.Apply(raw, &display); err != nil {
			return fmt.Errorf("tint frame: %w", err)
		}
		readings, err := l.pipeline.Process(&display)
		l.stats.Frames++
		l.stats.Faces += len(readings)
		if err != nil {
			return fmt.Errorf("annotate frame: %w", err)
		}

		if err := l.res.Display.IMShow(display); err != nil {
			return fmt.Errorf("show frame: %w", err)
		}
		l.handleKey(l.res.Display.WaitKey(pollDelay), display)
	}
	return nil
}

// handleKey reacts to at most one key per frame.
func (l *Loop) handleKey(key int, frame gocv.Mat) {
	if key < 0 {
		return
	}
	switch key & 0xFF {
	case keyQuit:
		l.state = Stopped
	case keySave:
		if err := l.save(l.snapshotPath, frame); err != nil {
			l.stats.SaveFailures++
			utils.ShowError("Failed to save sample output", err)
			return
		}
		l.stats.Snapshots++
		fmt.Fprintf(l.out, "📸 Sample output saved to %s\n", l.snapshotPath)
	}
}

func (l *Loop) State() State { return l.state }

func (l *Loop) Stats() Stats { return l.stats }
