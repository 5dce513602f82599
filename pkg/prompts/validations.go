// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"encoding/hex"
	"errors"
	"strings"
)

func validatePrivateKey(input string) error {
	key := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if len(key) != 64 {
		return errors.New("private key must be 32 bytes hex encoded")
	}
	if _, err := hex.DecodeString(key); err != nil {
		return errors.New("private key must be hex encoded")
	}
	return nil
}
