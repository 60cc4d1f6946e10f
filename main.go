package main

import (
	"fenview/ui"
	"fmt"
	"os"
)

func main() {
	if err := ui.RunFenView(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
