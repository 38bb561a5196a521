package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dottler/cmd/dottler"
	"github.com/arthur-debert/dottler/internal/version"
)

// Writes dottler.1 to stdout, or one page per command into the directory
// given as the first argument.
func main() {
	rootCmd := dottler.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTTLER",
		Section: "1",
		Source:  "dottler " + version.Version,
		Manual:  "dottler manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
