package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"phong-gl/libmesh"
	"strings"

	"golang.org/x/exp/slices"
)

type generateArgs struct {
	commonArgs
	slices int
	rings  int
}

func createGenerateCommand() *command {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	args := generateArgs{
		commonArgs: commonArgs{compress: 9},
		slices:     32,
		rings:      48,
	}

	registerCommonFlags(flags, &args.commonArgs)
	flags.IntVar(&args.slices, "slices", args.slices, "the subdivisions around curved shapes")
	flags.IntVar(&args.rings, "rings", args.rings, "the subdivisions along the torus ring")

	return &command{
		Flags: flags,
		Name:  "generate",
		Help:  "writes the procedural primitives as mesh files",
		Run: func(self *command) {
			if flags.NArg() == 0 {
				printCommandUsage(self, fmt.Sprintf(" <%s>...", strings.Join(libmesh.BuiltinNames, "|")))
			}
			setCommonArgs(&args.commonArgs)
			runGenerate(args, flags.Args())
		},
	}
}

func buildShape(name string, args generateArgs) (*libmesh.Mesh, error) {
	switch name {
	case "cube":
		return libmesh.Cube(), nil
	case "cylinder":
		return libmesh.Cylinder(args.slices), nil
	case "torus":
		return libmesh.Torus(args.rings, args.slices*3/4), nil
	case "sphere":
		return libmesh.UvSphere(args.slices, args.slices/2), nil
	}
	return nil, fmt.Errorf("%q is not a builtin shape; one of %s", name, strings.Join(libmesh.BuiltinNames, ", "))
}

func runGenerate(args generateArgs, names []string) {
	if slices.Contains(names, "all") {
		names = slices.Clone(libmesh.BuiltinNames)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	level, compress := compressionLevel(args.compress)
	ext := ".geo"
	if compress {
		ext = ".geo.lz4"
	}

	failed := 0
	for _, name := range names {
		mesh, err := buildShape(name, args)
		if softerr(err) {
			failed++
			continue
		}
		filename := filepath.Join(args.out, name+ext)
		if softerr(libmesh.SaveMeshFile(filename, mesh, level)) {
			failed++
			continue
		}
		infof("wrote %s: %d vertices, %d triangles\n", filename, len(mesh.Vertices), len(mesh.Indices)/3)
	}
	if failed > 0 {
		harderr(fmt.Errorf("%d of %d meshes failed", failed, len(names)))
	}
}
