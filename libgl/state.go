package libgl

import (
	"github.com/go-gl/gl/v4.5-core/gl"
)

type GlCapability uint32

const (
	DepthTest   GlCapability = gl.DEPTH_TEST
	Blend       GlCapability = gl.BLEND
	ScissorTest GlCapability = gl.SCISSOR_TEST
	CullFace    GlCapability = gl.CULL_FACE
)

type GlBlendFactor uint32

const (
	BlendZero             GlBlendFactor = gl.ZERO
	BlendOne              GlBlendFactor = gl.ONE
	BlendSrcAlpha         GlBlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha GlBlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type GlBlendEquation uint32

const (
	BlendFuncAdd GlBlendEquation = gl.FUNC_ADD
)

type GlDepthFunc uint32

const (
	DepthFuncLess   GlDepthFunc = gl.LESS
	DepthFuncLEqual GlDepthFunc = gl.LEQUAL
	DepthFuncAlways GlDepthFunc = gl.ALWAYS
)

// GlStateManager skips GL calls that would not change the current state.
// It assumes it is the only one changing the tracked state.
type GlStateManager struct {
	Caps                                   map[GlCapability]bool
	TextureUnits                           []uint32
	ArrayBuffer, ElementArrayBuffer        uint32
	Program, ProgramPipeline, VertexArray  uint32
	ViewportRect, ScissorRect              [4]int
	BlendRGBFactorSrc, BlendAlphaFactorSrc GlBlendFactor
	BlendRGBFactorDst, BlendAlphaFactorDst GlBlendFactor
	BlendEquationRGB, BlendEquationAlpha   GlBlendEquation
	DepthFuncFn                            GlDepthFunc
	DepthWriteMask                         bool
	CullFaceMask                           uint32
	ClearColorRGBA                         [4]float32
	PolygonModeFront, PolygonModeBack      uint32
}

var State *GlStateManager

// NewGlStateManager returns a manager holding the GL default state.
func NewGlStateManager() *GlStateManager {
	return &GlStateManager{
		Caps:             map[GlCapability]bool{},
		TextureUnits:     make([]uint32, 32),
		DepthFuncFn:      DepthFuncLess,
		DepthWriteMask:   true,
		CullFaceMask:     gl.BACK,
		PolygonModeFront: gl.FILL,
		PolygonModeBack:  gl.FILL,
	}
}

func (s *GlStateManager) Enable(cap GlCapability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *GlStateManager) Disable(cap GlCapability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

func (s *GlStateManager) Toggle(cap GlCapability, enabled bool) {
	if enabled {
		s.Enable(cap)
	} else {
		s.Disable(cap)
	}
}

// SetEnabled enables exactly caps and disables every other tracked capability.
func (s *GlStateManager) SetEnabled(caps ...GlCapability) {
	diff := map[GlCapability]bool{}
	for c, v := range s.Caps {
		if v {
			diff[c] = false
		}
	}
	for _, c := range caps {
		diff[c] = true
	}
	for c, v := range diff {
		s.Toggle(c, v)
	}
}

func (s *GlStateManager) CullBack() {
	if s.CullFaceMask == gl.BACK {
		return
	}
	gl.CullFace(gl.BACK)
	s.CullFaceMask = gl.BACK
}

func (s *GlStateManager) BlendFunc(sfactor, dfactor GlBlendFactor) {
	if s.BlendAlphaFactorSrc == sfactor && s.BlendRGBFactorSrc == sfactor && s.BlendAlphaFactorDst == dfactor && s.BlendRGBFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendRGBFactorSrc, s.BlendAlphaFactorSrc = sfactor, sfactor
	s.BlendRGBFactorDst, s.BlendAlphaFactorDst = dfactor, dfactor
}

func (s *GlStateManager) BlendEquation(mode GlBlendEquation) {
	if s.BlendEquationRGB == mode && s.BlendEquationAlpha == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationRGB, s.BlendEquationAlpha = mode, mode
}

func (s *GlStateManager) DepthFunc(fn GlDepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *GlStateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *GlStateManager) PolygonMode(face, mode uint32) {
	if face == gl.FRONT_AND_BACK && (s.PolygonModeFront != mode || s.PolygonModeBack != mode) {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
		s.PolygonModeFront = mode
	} else if face == gl.FRONT && s.PolygonModeFront != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeFront = mode
	} else if face == gl.BACK && s.PolygonModeBack != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
	}
}

func (s *GlStateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *GlStateManager) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if s.ArrayBuffer == buffer {
			return
		}
		s.ArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if s.ElementArrayBuffer == buffer {
			return
		}
		s.ElementArrayBuffer = buffer
	}
	gl.BindBuffer(target, buffer)
}

func (s *GlStateManager) BindProgramPipeline(pipeline uint32) {
	if s.ProgramPipeline == pipeline && s.Program == 0 {
		return
	}
	// a bound program takes precedence over the pipeline
	s.UseProgram(0)
	gl.BindProgramPipeline(pipeline)
	s.ProgramPipeline = pipeline
}

func (s *GlStateManager) UseProgram(program uint32) {
	if s.Program == program {
		return
	}
	gl.UseProgram(program)
	s.Program = program
}

func (s *GlStateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
	// the element buffer binding is part of the vertex array
	s.ElementArrayBuffer = 0
}

func (s *GlStateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect[0] == x && s.ViewportRect[1] == y && s.ViewportRect[2] == w && s.ViewportRect[3] == h {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *GlStateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect[0] == x && s.ScissorRect[1] == y && s.ScissorRect[2] == w && s.ScissorRect[3] == h {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *GlStateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA[0] == r && s.ClearColorRGBA[1] == g && s.ClearColorRGBA[2] == b && s.ClearColorRGBA[3] == a {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}
