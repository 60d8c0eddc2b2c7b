package main

import (
	"os"

	"github.com/cyphernet-dao/go-ssid/cmd/ssid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
