// Package main provides the entry point for fpanon.
package main

import (
	"os"

	"github.com/fpvault/fpanon/cmd/fpanon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
