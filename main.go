// The main package for the vcatlas executable.
package main

import (
	"github.com/vcatlas/vcatlas/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
