package main

import (
	"os"

	"vida/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
