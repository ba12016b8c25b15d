package main

import (
	"log"

	"github.com/mathstatic/msc/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
