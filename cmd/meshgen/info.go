package main

import (
	"flag"
	"fmt"
	"phong-gl/libmesh"

	"github.com/go-gl/mathgl/mgl32"
)

func createInfoCommand() *command {
	flags := flag.NewFlagSet("info", flag.ExitOnError)
	args := commonArgs{}
	flags.BoolVar(&args.supress, "supress", args.supress, "disables soft error logging")

	return &command{
		Flags: flags,
		Name:  "info",
		Help:  "prints the size and bounds of mesh files",
		Run: func(self *command) {
			if flags.NArg() == 0 {
				printCommandUsage(self, " <file>...")
			}
			cargs = &args
			for _, filename := range flags.Args() {
				mesh, err := libmesh.LoadMeshFile(filename)
				if softerr(err) {
					continue
				}
				lo, hi := bounds(mesh)
				fmt.Printf("%s: %q\n", filename, mesh.Name)
				fmt.Printf("    vertices  %d\n", len(mesh.Vertices))
				fmt.Printf("    triangles %d\n", len(mesh.Indices)/3)
				fmt.Printf("    edges     %d\n", len(libmesh.WireIndices(mesh.Indices))/2)
				fmt.Printf("    bounds    %v %v\n", lo, hi)
			}
		},
	}
}

func bounds(mesh *libmesh.Mesh) (lo, hi mgl32.Vec3) {
	if len(mesh.Vertices) == 0 {
		return
	}
	lo, hi = mesh.Vertices[0].Position, mesh.Vertices[0].Position
	for _, v := range mesh.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}
