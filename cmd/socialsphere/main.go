package main

import (
	"log"

	"github.com/socialsphere/socialsphere/cmd/socialsphere/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
