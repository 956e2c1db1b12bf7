// Command cubical computes the persistent homology of cubical complexes
// built from scalar grids.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/cubical/internal/cmd"
)

func main() {
	cmd.Log()
	if err := cmd.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
