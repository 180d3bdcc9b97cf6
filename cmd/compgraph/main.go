// Command compgraph runs one of the built-in analytics graphs over a
// newline-delimited JSON input file.
package main

import "github.com/DeVictoria/compgraph/cmd"

func main() {
	cmd.Execute()
}
