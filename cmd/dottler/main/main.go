package main

import (
	"os"

	"github.com/arthur-debert/dottler/cmd/dottler"
)

func main() {
	os.Exit(dottler.Run(os.Args[1:], os.Stdout, os.Stderr))
}
