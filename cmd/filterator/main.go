package main

import (
	"os"

	"github.com/roach88/filterator/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
