package libscn

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"phong-gl/libutil"
)

// TransformStack composes object placements on top of a base matrix,
// usually the view matrix. Every PushMatrix must be paired with a PopMatrix
// before the next sibling is drawn.
type TransformStack struct {
	current mgl32.Mat4
	saved   []mgl32.Mat4
}

func NewTransformStack() *TransformStack {
	return &TransformStack{
		current: mgl32.Ident4(),
		saved:   make([]mgl32.Mat4, 0, 8),
	}
}

// LoadMatrix replaces the whole stack with a single base matrix.
func (s *TransformStack) LoadMatrix(m mgl32.Mat4) {
	s.current = m
	s.saved = s.saved[:0]
}

func (s *TransformStack) PushMatrix() {
	s.saved = append(s.saved, s.current)
}

func (s *TransformStack) PopMatrix() error {
	n := len(s.saved)
	if n == 0 {
		return ErrStackUnderflow
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return nil
}

// Depth is the number of pushes without a matching pop.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}

func (s *TransformStack) MultMatrix(m mgl32.Mat4) {
	s.current = s.current.Mul4(m)
}

func (s *TransformStack) MultTranslation(v mgl32.Vec3) {
	s.MultMatrix(mgl32.Translate3D(v[0], v[1], v[2]))
}

func (s *TransformStack) MultScale(v mgl32.Vec3) {
	s.MultMatrix(mgl32.Scale3D(v[0], v[1], v[2]))
}

// MultRotation rotates counter-clockwise by angle degrees around axis.
// A zero axis leaves the top untouched.
func (s *TransformStack) MultRotation(angle float32, axis mgl32.Vec3) {
	n, ok := libutil.SafeNormalize(axis)
	if !ok {
		return
	}
	s.MultMatrix(mgl32.HomogRotate3D(angle*libutil.Deg2Rad, n))
}

func (s *TransformStack) ModelView() mgl32.Mat4 {
	return s.current
}

// Scoped runs fn between a push and its pop. The pop happens even if fn fails.
func (s *TransformStack) Scoped(fn func() error) error {
	s.PushMatrix()
	err := fn()
	if perr := s.PopMatrix(); perr != nil {
		return perr
	}
	return err
}

func (s *TransformStack) NormalMatrix() (mgl32.Mat4, error) {
	return NormalMatrix(s.current)
}

// NormalMatrix is the inverse-transpose of the upper 3x3 of m, embedded in a 4x4.
func NormalMatrix(m mgl32.Mat4) (mgl32.Mat4, error) {
	m3 := m.Mat3()
	det := m3.Det()
	if math32.Abs(det) < 1e-8 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return mgl32.Ident4(), ErrSingularMatrix
	}
	return m3.Inv().Transpose().Mat4(), nil
}
