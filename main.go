package main

import (
	"os"

	"github.com/gowriprasath-v/train-traffic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
