package capture

import (
	"errors"
	"fmt"

	"github.com/andresmejia3/tonematch/internal/detector"
	"gocv.io/x/gocv"
)

// Source yields frames. *gocv.VideoCapture satisfies it.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Display shows frames and reports key presses.
type Display interface {
	IMShow(img gocv.Mat) error
	WaitKey(delay int) int
	Close() error
}

// window adapts *gocv.Window to Display.
type window struct {
	w *gocv.Window
}

func (w window) IMShow(img gocv.Mat) error { return w.w.IMShow(img) }
func (w window) WaitKey(delay int) int     { return w.w.WaitKey(delay) }
func (w window) Close() error              { return w.w.Close() }

// Resources are the handles the live loop owns for its whole lifetime.
type Resources struct {
	Detector detector.Detector
	Source   Source
	Display  Display

	closed bool
}

// Config describes where live resources come from.
type Config struct {
	Device      string // camera index or video file, as accepted by gocv.OpenVideoCapture
	CascadePath string
	WindowTitle string
}

var (
	ErrDetectorInit = errors.New("face detector unavailable")
	ErrSourceInit   = errors.New("video source unavailable")
)

// Constructors used by Open, replaceable in tests.
var (
	newDetector = func(path string) (detector.Detector, error) {
		return detector.NewCascade(path, detector.DefaultParams())
	}
	openSource  = openVideoCapture
	openDisplay = func(title string) Display { return window{w: gocv.NewWindow(title)} }
)

// openVideoCapture opens a camera index or video file. gocv hands back an
// allocated capture even when opening fails, so src may be non-nil together
// with err and must still be closed.
func openVideoCapture(device string) (Source, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if vc == nil {
		return nil, err
	}
	if err == nil && !vc.IsOpened() {
		err = fmt.Errorf("device %q did not open", device)
	}
	return vc, err
}

// Open acquires the detector, then the video source, then the window. If a
// later step fails, everything acquired so far is released before returning.
func Open(cfg Config) (*Resources, error) {
	det, err := newDetector(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetectorInit, err)
	}

	src, err := openSource(cfg.Device)
	if err != nil {
		if src != nil {
			src.Close()
		}
		det.Close()
		return nil, fmt.Errorf("%w: %w", ErrSourceInit, err)
	}

	return &Resources{
		Detector: det,
		Source:   src,
		Display:  openDisplay(cfg.WindowTitle),
	}, nil
}

// Close releases the source, the display and the detector. Only the first
// call has any effect.
func (r *Resources) Close() error {
	if r == nil || r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if r.Source != nil {
		if err := r.Source.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close source: %w", err))
		}
	}
	if r.Display != nil {
		if err := r.Display.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close display: %w", err))
		}
	}
	if r.Detector != nil {
		if err := r.Detector.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close detector: %w", err))
		}
	}
	return errors.Join(errs...)
}
