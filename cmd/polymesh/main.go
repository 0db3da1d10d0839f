// Command polymesh previews and renders animated polygon mesh backgrounds.
package main

import (
	"os"

	"github.com/phanxgames/polymesh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
