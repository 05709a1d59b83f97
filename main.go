package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/prohmpiriya/charity-events/cmd"
	"github.com/prohmpiriya/charity-events/pkg/logger"
)

func main() {
	err := cmd.Execute()
	_ = logger.Sync()
	if err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
