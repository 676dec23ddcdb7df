package main

import (
	"fmt"
	"os"

	"github.com/World-Meteorological-Organization/cap2geojson/internal/cli"
)

func main() {
	if err := cli.Run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
