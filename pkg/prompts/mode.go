// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// Environment variable names for non-interactive mode.
const (
	// EnvNonInteractive forces non-interactive mode.
	// Set to "1", "true", "yes", or "on" to enable.
	EnvNonInteractive = "KSA_NON_INTERACTIVE"

	// EnvCI is a common CI environment variable.
	// When truthy, implies non-interactive.
	EnvCI = "CI"
)

var nonInteractive atomic.Bool

// SetNonInteractive forces non-interactive mode, as --non-interactive does
func SetNonInteractive(v bool) {
	nonInteractive.Store(v)
}

// isTruthyEnv checks if an environment variable is set to a truthy value.
// Accepts: 1, true, t, yes, y, on (case-insensitive)
func isTruthyEnv(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// stdinIsTTY is a variable for testing purposes
var stdinIsTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive returns true if prompting is allowed.
//
// Interactive mode is enabled when ALL of:
//   - --non-interactive was not given
//   - KSA_NON_INTERACTIVE is not truthy
//   - CI is not truthy
//   - stdin is a TTY (not piped/redirected)
func IsInteractive() bool {
	if nonInteractive.Load() {
		return false
	}
	if isTruthyEnv(EnvNonInteractive) {
		return false
	}
	if isTruthyEnv(EnvCI) {
		return false
	}
	return stdinIsTTY()
}

func IsNonInteractive() bool {
	return !IsInteractive()
}
