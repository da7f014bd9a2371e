package main

import (
	"log"

	"github.com/govscout/tender-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
