// Command terrainctl generates, inspects and previews terrain meshes from
// the command line.
package main

import "github.com/Faultbox/terrain-viewer/internal/cli"

func main() {
	cli.Execute()
}
