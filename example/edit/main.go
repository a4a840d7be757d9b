// Package main demonstrates the non-history Edit mode: a single line is
// read with the usual editing keys, seeded with initial text.
package main

import (
	"fmt"
	"log"

	"github.com/Stuff7/readln"
)

func main() {
	r, err := readln.New("name: ")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	name, err := r.Edit("anonymous")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Hello, %s!\n", name)
}
