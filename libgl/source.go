package libgl

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
)

var shaderIncludePattern = regexp.MustCompile(`(?m)^[ \t]*#include[ \t]+"([^"]+)"[ \t]*$`)

const maxIncludeDepth = 8

// ExpandIncludes replaces `#include "name"` lines with the named file
// from fsys, resolved relative to dir.
func ExpandIncludes(fsys fs.FS, dir, source string) (string, error) {
	return expandIncludes(fsys, dir, source, 0)
}

func expandIncludes(fsys fs.FS, dir, source string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("includes nested deeper than %d", maxIncludeDepth)
	}
	var err error
	expanded := shaderIncludePattern.ReplaceAllStringFunc(source, func(line string) string {
		if err != nil {
			return ""
		}
		name := path.Join(dir, shaderIncludePattern.FindStringSubmatch(line)[1])
		var data []byte
		data, err = fs.ReadFile(fsys, name)
		if err != nil {
			err = fmt.Errorf("include %q: %w", name, err)
			return ""
		}
		var inner string
		inner, err = expandIncludes(fsys, path.Dir(name), string(data), depth+1)
		return inner
	})
	if err != nil {
		return "", err
	}
	return expanded, nil
}

// LoadShader reads name from fsys, expands its includes and prepares it
// for stage.
func LoadShader(fsys fs.FS, name string, stage int) (ShaderProgram, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	source, err := ExpandIncludes(fsys, path.Dir(name), string(data))
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	return NewShader(source, stage)
}
