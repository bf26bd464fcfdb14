package pipeline

import "gocv.io/x/gocv"

// Blend weights for the cosmetic pink wash applied to live frames.
const (
	tintSource     = 0.8
	tintBackground = 0.2
)

// tintBGR is a very light pink in OpenCV channel order.
var tintBGR = gocv.NewScalar(240, 220, 255, 0)

// Tinter blends frames with a flat pink layer. The layer is reused until the
// frame geometry changes.
type Tinter struct {
	background gocv.Mat
}

func NewTinter() *Tinter {
	return &Tinter{background: gocv.NewMat()}
}

// Apply writes 0.8*src + 0.2*pink into dst. src is left untouched.
func (t *Tinter) Apply(src gocv.Mat, dst *gocv.Mat) error {
	if src.Empty() {
		return nil
	}
	if t.background.Rows() != src.Rows() || t.background.Cols() != src.Cols() || t.background.Type() != src.Type() {
		t.background.Close()
		t.background = gocv.NewMatWithSizeFromScalar(tintBGR, src.Rows(), src.Cols(), src.Type())
	}
	return gocv.AddWeighted(src, tintSource, t.background, tintBackground, 0, dst)
}

func (t *Tinter) Close() error {
	return t.background.Close()
}
