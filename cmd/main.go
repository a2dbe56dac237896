package main

import (
	"os"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
