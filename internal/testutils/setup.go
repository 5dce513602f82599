// Copyright (C) 2022, Lux Partners Limited, All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"crypto/ecdsa"

	"github.com/luxfi/ksa-deploy/pkg/key"
	"github.com/stretchr/testify/require"
)

// DeployerKey parses TestPrivateKey
func DeployerKey(t TestingT) *ecdsa.PrivateKey {
	t.Helper()
	privateKey, err := key.ParsePrivateKey(TestPrivateKey)
	require.NoError(t, err)
	return privateKey
}
