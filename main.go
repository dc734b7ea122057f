package main

import (
	"fmt"
	"os"

	"github.com/openhdg/hdg1d/cmd/hdg1d"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
