// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func mockPromptUIRunner(t *testing.T, answer string, err error) *promptui.Prompt {
	t.Helper()
	captured := &promptui.Prompt{}
	original := promptUIRunner
	promptUIRunner = func(prompt promptui.Prompt) (string, error) {
		*captured = prompt
		return answer, err
	}
	t.Cleanup(func() { promptUIRunner = original })
	return captured
}

func TestCapturePrivateKey(t *testing.T) {
	require := require.New(t)
	captured := mockPromptUIRunner(t, " 0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80 ", nil)

	key, err := NewPrompter(&bytes.Buffer{}).CapturePrivateKey("Deployer private key")
	require.NoError(err)
	require.Equal("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", key)
	require.Equal('*', captured.Mask)
	require.Equal("Deployer private key", captured.Label)
}

func TestCapturePrivateKeyRendersOnGivenWriter(t *testing.T) {
	require := require.New(t)
	captured := mockPromptUIRunner(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", nil)
	out := &bytes.Buffer{}

	_, err := NewPrompter(out).CapturePrivateKey("Deployer private key")
	require.NoError(err)
	// a nil Stdout makes readline fall back to os.Stdout
	require.NotNil(captured.Stdout)
	require.NotEqual(os.Stdout, captured.Stdout)

	_, err = captured.Stdout.Write([]byte("Deployer private key: ****"))
	require.NoError(err)
	require.NoError(captured.Stdout.Close())
	require.Equal("Deployer private key: ****", out.String())
}

func TestCapturePrivateKeyAborted(t *testing.T) {
	mockPromptUIRunner(t, "", promptui.ErrInterrupt)

	_, err := NewPrompter(&bytes.Buffer{}).CapturePrivateKey("Deployer private key")
	require.True(t, errors.Is(err, promptui.ErrInterrupt))
}

func TestValidatePrivateKey(t *testing.T) {
	require.NoError(t, validatePrivateKey("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
	require.Error(t, validatePrivateKey("ac09"))
	require.Error(t, validatePrivateKey("zz0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
}
