package main

import "flag"

// Command-line flags for the field of view demo.
var (
	// sceneFlag points at the TOML scene description.
	sceneFlag = flag.String("scene", "scene.toml", "path to the TOML scene file (defaults are used if it does not exist)")

	// watchFlag reloads the scene whenever the file changes on disk.
	watchFlag = flag.Bool("watch", false, "reload the scene when the scene file changes")

	// algorithmFlag overrides the hull algorithm from the scene file.
	algorithmFlag = flag.String("hull", "", "override the hull algorithm (monotone or graham)")

	// parallelFlag forces casters to run on separate goroutines.
	parallelFlag = flag.Bool("parallel", false, "compute obstacle shadows in parallel")
)
