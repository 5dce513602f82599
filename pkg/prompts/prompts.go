// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

type Prompter interface {
	CapturePrivateKey(promptStr string) (string, error)
}

type realPrompter struct {
	out io.WriteCloser
}

// NewPrompter returns a prompter rendering on [out]. Prompts never render
// on stdout, which only carries the deployed address.
func NewPrompter(out io.Writer) Prompter {
	return &realPrompter{out: nopCloser{out}}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// CapturePrivateKey reads a hex private key without echoing it
func (p *realPrompter) CapturePrivateKey(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validatePrivateKey,
		Stdout:   p.out,
	}
	privateKey, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"), nil
}
