//go:build tools
// +build tools

// Package tools pins the code generators run by `go generate` (mockgen)
// so go.mod keeps them even though no runtime code imports them.
package ludo_lab

import (
	_ "go.uber.org/mock/mockgen"
)
