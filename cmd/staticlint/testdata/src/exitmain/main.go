package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) > 5 {
		os.Exit(2) // want "direct call to os.Exit is not allowed in main"
	}
	log.Fatal("stop")
}

func helper() {
	os.Exit(1)
}
