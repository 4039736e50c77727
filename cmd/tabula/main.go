// Command tabula stores, edits, and queries tabulated functions.
package main

import "github.com/mesh-intelligence/tabula/internal/cli"

func main() {
	cli.Execute()
}
