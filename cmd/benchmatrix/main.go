// cmd/benchmatrix/main.go
package main

import (
	cmd "github.com/mwiater/benchmatrix/internal/commands"
)

// main starts the benchmatrix CLI by delegating to the cobra root command.
func main() {
	cmd.Execute()
}
