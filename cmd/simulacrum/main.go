// Package main is the entry point for the simulacrum command line
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(dialRedis).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
