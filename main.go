package main

import (
	"log"

	"github.com/dmaksimov/interview-coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
