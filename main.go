package main

import "github.com/kozaktomas/facetrace/cmd"

func main() {
	cmd.Execute()
}
