package main

import (
	"github.com/joshy-alphonse/BioPython-Workshop/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
