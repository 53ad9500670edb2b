package libmesh

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// DirPack indexes the .geo and .geo.lz4 files of a directory by name.
type DirPack struct {
	MeshIndex map[string]string
}

func (pack *DirPack) AddDir(root string) error {
	if pack.MeshIndex == nil {
		pack.MeshIndex = map[string]string{}
	}
	root = filepath.Clean(root)
	return pack.addAllMatches(root, []string{"*.geo", "*.geo.lz4"})
}

func (pack *DirPack) addAllMatches(root string, patterns []string) error {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return err
		}
		for _, match := range matches {
			match = filepath.ToSlash(match)

			name, _, _ := strings.Cut(path.Base(match), ".")
			pack.MeshIndex[name] = match
		}
	}
	return nil
}

func (pack *DirPack) LoadMesh(name string) (*Mesh, error) {
	filename, ok := pack.MeshIndex[name]
	if !ok {
		return nil, fmt.Errorf("mesh %q is not registered in this pack: %w", name, fs.ErrNotExist)
	}
	return LoadMeshFile(filename)
}

// LoadOrBuiltin loads name from the pack and falls back to the
// procedural primitive of the same name when the pack has none.
func (pack *DirPack) LoadOrBuiltin(name string) (mesh *Mesh, builtin bool, err error) {
	mesh, err = pack.LoadMesh(name)
	if err == nil {
		return mesh, false, nil
	}
	if _, ok := pack.MeshIndex[name]; ok {
		return nil, false, err
	}
	if m, ok := Builtin(name); ok {
		return m, true, nil
	}
	return nil, false, err
}

func LoadMeshFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %q: %w", filename, err)
	}
	defer file.Close()

	var src io.Reader = file
	if strings.HasSuffix(filename, ".lz4") {
		src = lz4.NewReader(file)
	}

	mesh, err := DecodeMesh(src)
	if err != nil {
		return nil, fmt.Errorf("could not decode mesh file %q: %w", filename, err)
	}

	return mesh, nil
}

// WriteMesh encodes mesh to w, lz4 compressed when compress is set.
func WriteMesh(w io.Writer, mesh *Mesh, compress bool, level lz4.CompressionLevel) error {
	if !compress {
		return EncodeMesh(w, mesh)
	}
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(level)); err != nil {
		return err
	}
	if err := EncodeMesh(zw, mesh); err != nil {
		return err
	}
	return zw.Close()
}

func SaveMeshFile(filename string, mesh *Mesh, level lz4.CompressionLevel) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create mesh file %q: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteMesh(file, mesh, strings.HasSuffix(filename, ".lz4"), level)
}
