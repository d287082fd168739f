/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"errors"
	"os"

	"github.com/cristianoliveira/tip/cmd"
	"github.com/cristianoliveira/tip/internal/colors"
)

// errDeclined ends a command with exit status 1 and no message, as when a
// confirm is answered with no or a prompt is cancelled.
var errDeclined = errors.New("declined")

func main() {
	err := cmd.Execute()
	coreClient.Close()
	if err != nil {
		if !errors.Is(err, errDeclined) {
			colors.Error(err.Error())
		}
		os.Exit(1)
	}
}
