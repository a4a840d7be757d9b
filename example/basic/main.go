// Package main demonstrates basic usage of the readln library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/Stuff7/readln"
)

func main() {
	r, err := readln.New(">>> ")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	fmt.Println("Basic readln example")
	fmt.Println("Type 'exit' or 'quit' to exit, or press Ctrl+D")
	fmt.Println()

	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, readln.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Printf("You typed: %s\n", line)
	}
}
