// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the ewc command-line interface using Cobra. It loads
// configuration, wires the profile store and hub packages, and is the single
// place where errors are turned into user messages and exit codes. Commands
// stay thin and delegate to internal packages.
package cli
