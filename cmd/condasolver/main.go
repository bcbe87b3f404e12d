// Command condasolver is the CLI entry point over the solver core.
package main

import "condasolver/internal/cli"

func main() {
	cli.Execute()
}
