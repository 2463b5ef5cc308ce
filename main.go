// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the EWC CLI.
//
// Usage:
//
//	go run . [command] [flags]
//	./ewc [command] [flags]
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/ewcloud/ewccli/ui/cli"
)

func main() {
	os.Exit(cli.Execute())
}
