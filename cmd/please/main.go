package main

import (
	"os"

	"github.com/enricodhd/nixpkgs-tungsten/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
