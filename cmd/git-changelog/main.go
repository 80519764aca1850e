package main

import (
	"os"

	"github.com/weiw005/git-extras/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
