// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/luxfi/ksa-deploy/pkg/artifacts"
	"github.com/stretchr/testify/require"
)

// Development accounts, NOT for production use
const (
	TestPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	TestDeployer   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

const TokenABI = `[
	{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},
	{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const OwnedTokenABI = `[
	{"inputs":[{"internalType":"address","name":"initialOwner","type":"address"}],"stateMutability":"nonpayable","type":"constructor"}
]`

// TokenArtifact returns a compiled-looking KSAToken artifact
func TokenArtifact() *artifacts.Artifact {
	return &artifacts.Artifact{
		Format:       "hh-sol-artifact-1",
		ContractName: "KSAToken",
		SourceName:   "contracts/KSAToken.sol",
		ABI:          json.RawMessage(TokenABI),
		Bytecode:     "0x608060405234801561001057600080fd5b50",
	}
}

// TestingT is satisfied by *testing.T and ginkgo.GinkgoT()
type TestingT interface {
	require.TestingT
	Helper()
}

// WriteArtifact stores [artifact] under [dir] using the hardhat layout
func WriteArtifact(t TestingT, dir string, artifact *artifacts.Artifact) string {
	t.Helper()
	bs, err := json.MarshalIndent(artifact, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, artifact.SourceName, artifact.ContractName+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, bs, 0o600))
	return path
}
