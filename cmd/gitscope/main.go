package main

import (
	"fmt"
	"os"

	"github.com/grovetools/gitscope/cmd/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red("error: ")+err.Error())
		os.Exit(1)
	}
}
