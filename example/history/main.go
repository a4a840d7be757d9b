// Package main demonstrates history recall and persistence.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Stuff7/readln"
)

func main() {
	fmt.Println("History example with file persistence")
	fmt.Println("Use Up/Down to navigate history, Ctrl+R to search")
	fmt.Println("Type 'history' to list entries, 'clear' to clear them")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Printf("History is saved to %s\n", readln.DefaultHistoryFile())
	fmt.Println()

	// History file paths can also be absolute ("/home/user/.my_history"),
	// home-relative ("~/.my_history"), or relative ("./history").
	r, err := readln.New("history> ",
		readln.WithFileHistory(readln.DefaultHistoryFile(), 1000),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, readln.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			if errors.Is(err, readln.ErrInterrupted) {
				continue
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "history":
			for i, entry := range r.History() {
				fmt.Printf("  %3d: %s\n", i+1, entry)
			}
		case "clear":
			r.ClearHistory()
			fmt.Println("History cleared")
		default:
			fmt.Printf("Executed: %s\n", line)
		}
	}
}
