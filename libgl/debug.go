package libgl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

var debugSeverityNames = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "CRITICAL_ERROR",
	gl.DEBUG_SEVERITY_MEDIUM:       "ERROR",
	gl.DEBUG_SEVERITY_LOW:          "WARNING",
	gl.DEBUG_SEVERITY_NOTIFICATION: "INFO",
}

var debugTypeNames = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "ERROR",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED_BEHAVIOR",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED_BEHAVIOR",
	gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
	gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
	gl.DEBUG_TYPE_OTHER:               "OTHER",
	gl.DEBUG_TYPE_MARKER:              "MARKER",
}

var debugSourceNames = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "GRAPHICS_LIBRARY",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER_COMPILER",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW_SYSTEM",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD_PARTY",
	gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
	gl.DEBUG_SOURCE_OTHER:           "OTHER",
}

// InitDebugOutput routes driver messages to logger. High severity
// messages panic with the current debug group path.
func InitDebugOutput(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			switch gltype {
			case gl.DEBUG_TYPE_PUSH_GROUP:
				groupStack = append(groupStack, message)
				return
			case gl.DEBUG_TYPE_POP_GROUP:
				if len(groupStack) > 1 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}
			msg := fmt.Sprintf("[%v] %v #%v from %v: %v",
				debugSeverityNames[severity], debugTypeNames[gltype], id, debugSourceNames[source], message)
			if severity == gl.DEBUG_SEVERITY_HIGH {
				logger.Panicf("%v\ndebug stack: %v", msg, strings.Join(groupStack, " > "))
			}
			logger.Println(msg)
		}, nil)

	// buffer placement hints and the like
	disabledMessages := []uint32{131185}
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(disabledMessages)), &disabledMessages[0], false)
	disabledMessages = []uint32{131222}
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR, gl.DONT_CARE, int32(len(disabledMessages)), &disabledMessages[0], false)
}

// PushDebugGroup opens a named group; call the returned func to close it.
func PushDebugGroup(name string) func() {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
	return gl.PopDebugGroup
}
