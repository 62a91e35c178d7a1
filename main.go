package main

import (
	"os"

	"github.com/sciencelabshs/neonlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
