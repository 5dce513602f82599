// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrintToUser(t *testing.T) {
	require := require.New(t)
	out := &bytes.Buffer{}
	NewUserLog(zap.NewNop(), out)

	Logger.PrintToUser("network: %s", "sepolia")
	Logger.Info("not shown")

	require.Equal("network: sepolia\n", out.String())
}

func TestConvertToStringWithThousandSeparator(t *testing.T) {
	require.Equal(t, "1_234_567", ConvertToStringWithThousandSeparator(1234567))
	require.Equal(t, "999", ConvertToStringWithThousandSeparator(999))
}

func TestSpinnerNonTerminal(t *testing.T) {
	require := require.New(t)
	out := &bytes.Buffer{}

	s := StartSpinner(out, "Waiting for deployment", 0)
	s.Stop(nil)
	s.Stop(errors.New("ignored"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(lines, 2)
	require.Equal("Waiting for deployment...", lines[0])
	require.True(strings.HasPrefix(lines[1], "✓ Waiting for deployment ("))
}

func TestSpinnerFailure(t *testing.T) {
	out := &bytes.Buffer{}
	s := StartSpinner(out, "Deploying", 0)
	s.Stop(errors.New("reverted"))
	require.Contains(t, out.String(), "✗ Deploying (")
	require.Contains(t, out.String(), "FAILED")
}

func TestNewTable(t *testing.T) {
	out := &bytes.Buffer{}
	table := NewTable(out, "Contract", "Address")
	require.NoError(t, table.Append([]string{"KSAToken", "0x5FbDB2315678afecb367f032d93F642f64180aa3"}))
	require.NoError(t, table.Render())
	require.Contains(t, out.String(), "KSAToken")
	require.Contains(t, out.String(), "0x5FbDB2315678afecb367f032d93F642f64180aa3")
}
