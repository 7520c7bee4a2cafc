package main

import (
	"github.com/refhist/refhist/cmd"
)

var version = "0.0.1"

func main() {
	cmd.Execute(version)
}
