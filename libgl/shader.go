package libgl

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type glslDef struct {
	marker  string
	name    string
	value   string
	boolean bool
}

type program struct {
	uniformLocations map[string]int32
	definitions      map[string]glslDef
	versionEnd       int
	glId             uint32
	name             string
	sourceTemplate   string
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Stage() int
	Compile() error
	CompileWith(defs map[string]string) error
	Expand(defs map[string]string) string
	Destroy()
	GetUniformLocation(name string) int32
	HasUniform(name string) bool
	SetUniform(name string, value any)
}

// NewShader prepares source for compilation. A `//meta:name` line names
// the program; `#define` lines become overridable by CompileWith.
func NewShader(source string, stage int) (ShaderProgram, error) {
	versionLoc := shaderVersionPattern.FindStringIndex(source)
	if versionLoc == nil {
		return nil, fmt.Errorf("shader source has no #version directive")
	}

	name := "untitled"
	for _, match := range shaderMetaPattern.FindAllStringSubmatch(source, -1) {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}

	defineMatches := shaderDefinePattern.FindAllStringSubmatch(source, -1)
	definitions := make(map[string]glslDef, len(defineMatches))
	defineMarkers := make(map[string]string, len(defineMatches))
	for i, match := range defineMatches {
		value := strings.TrimSpace(match[3])
		marker := fmt.Sprintf("$def_%v$", i)
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		definitions[strings.ToLower(match[2])] = glslDef{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		defineMarkers[match[0]] = marker
	}
	source = shaderDefinePattern.ReplaceAllStringFunc(source, func(s string) string {
		return defineMarkers[s]
	})

	return &program{
		uniformLocations: map[string]int32{},
		definitions:      definitions,
		name:             name,
		stage:            stage,
		sourceTemplate:   source,
		versionEnd:       shaderVersionPattern.FindStringIndex(source)[1],
	}, nil
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Stage() int {
	return prog.stage
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

func (def glslDef) line(value string) string {
	if def.boolean {
		if value == "false" {
			return "// #define " + def.name
		}
		return "#define " + def.name
	}
	return fmt.Sprintf("#define %v %v", def.name, value)
}

// Expand returns the source with defs overriding its own defines.
// Definitions the source does not have are inserted after #version.
func (prog *program) Expand(defs map[string]string) string {
	source := prog.sourceTemplate

	// sorted so the injected block is stable between reloads
	names := maps.Keys(defs)
	slices.Sort(names)

	used := map[string]bool{}
	var injected strings.Builder
	for _, n := range names {
		k := strings.ToLower(n)
		if def, ok := prog.definitions[k]; ok {
			source = strings.Replace(source, def.marker, def.line(defs[n]), 1)
			used[k] = true
		} else {
			fmt.Fprintf(&injected, "\n#define %v %v", n, defs[n])
		}
	}
	source = source[:prog.versionEnd] + injected.String() + source[prog.versionEnd:]

	for k, def := range prog.definitions {
		if used[k] {
			continue
		}
		source = strings.Replace(source, def.marker, def.line(def.value), 1)
	}
	return source
}

// CompileWith links the expanded source as a separable program. On
// failure the previous program stays in use.
func (prog *program) CompileWith(defs map[string]string) error {
	source := prog.Expand(defs)

	cStrs, free := gl.Strs(source + "\x00")
	id := gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
	free()

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return fmt.Errorf("failed to link %v shader, log: %v", prog.name, info)
	}
	gl.ValidateProgram(id)
	gl.GetProgramiv(id, gl.VALIDATE_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return fmt.Errorf("failed to validate %v shader, log: %v", prog.name, info)
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.uniformLocations = map[string]int32{}

	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Destroy() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) lookup(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}
	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location
	return location
}

func (prog *program) HasUniform(name string) bool {
	return prog.glId != 0 && prog.lookup(name) != -1
}

// GetUniformLocation returns -1 and logs when name is not an active uniform.
func (prog *program) GetUniformLocation(name string) int32 {
	_, seen := prog.uniformLocations[name]
	location := prog.lookup(name)
	if location == -1 && !seen {
		log.Printf("%v shader: could not get location of %q\n", prog.name, name)
	}
	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	for refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr; refVal = reflect.ValueOf(value) {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case bool:
		var b int32
		if v {
			b = 1
		}
		gl.ProgramUniform1i(prog, location, b)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %T", value)
	}
}

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
	missing   map[string]bool
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Id() uint32
	// SetUniform sets name on every attached stage that declares it.
	SetUniform(name string, value any)
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId:    id,
		missing: map[string]bool{},
	}
}

func (pipeline *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(pipeline.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		pipeline.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		pipeline.fragStage = program
	}
	pipeline.missing = map[string]bool{}
}

func (pipeline *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return pipeline.vertStage
	case gl.FRAGMENT_SHADER:
		return pipeline.fragStage
	}
	log.Panicf("%d is not a valid shader stage\n", stage)
	return nil
}

func (pipeline *shaderPipeline) stages() []ShaderProgram {
	stages := make([]ShaderProgram, 0, 2)
	for _, s := range []ShaderProgram{pipeline.vertStage, pipeline.fragStage} {
		if s != nil {
			stages = append(stages, s)
		}
	}
	return stages
}

func (pipeline *shaderPipeline) SetUniform(name string, value any) {
	found := false
	for _, stage := range pipeline.stages() {
		if stage.HasUniform(name) {
			stage.SetUniform(name, value)
			found = true
		}
	}
	if found || pipeline.missing[name] {
		return
	}
	pipeline.missing[name] = true
	log.Printf("pipeline %d: no stage declares %q\n", pipeline.glId, name)
}

func (pipeline *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(pipeline.glId)
	return BoundShaderPipeline(pipeline)
}

func (pipeline *shaderPipeline) Id() uint32 {
	return pipeline.glId
}

func (pipeline *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, pipeline.glId, label)
}

func (pipeline *shaderPipeline) Delete() {
	gl.DeleteProgramPipelines(1, &pipeline.glId)
	pipeline.glId = 0
}
