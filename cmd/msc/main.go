package main

import (
	"github.com/mathstatic/msc/pkg/cli"
)

func main() {
	cli.Execute()
}
