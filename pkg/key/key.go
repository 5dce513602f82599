// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/go-bip39"
	"github.com/luxfi/ksa-deploy/pkg/config"
	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/prompts"
)

var ErrInvalidHDPath = errors.New("invalid hd derivation path")

// PrivateKeyPrompter asks the user for a private key when none is configured
type PrivateKeyPrompter interface {
	CapturePrivateKey(promptStr string) (string, error)
}

// Resolve returns the deployer key for [network].
// Priority: network accounts (including --private-key) > mnemonic > prompt.
// [prompter] may be nil, in which case no prompt is attempted.
func Resolve(network config.Network, prompter PrivateKeyPrompter) (*ecdsa.PrivateKey, error) {
	if len(network.Accounts) > 0 {
		key, err := ParsePrivateKey(network.Accounts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid private key for network %s: %w", network.Name, err)
		}
		return key, nil
	}
	if network.Mnemonic != "" {
		hdPath := network.HDPath
		if hdPath == "" {
			hdPath = constants.DefaultHDPath
		}
		return FromMnemonic(network.Mnemonic, hdPath, network.InitialIndex)
	}
	if prompter != nil {
		privateKey, err := prompter.CapturePrivateKey("Deployer private key")
		if errors.Is(err, prompts.ErrNonInteractive) {
			return nil, constants.ErrNoDeployerKey
		}
		if err != nil {
			return nil, err
		}
		return ParsePrivateKey(privateKey)
	}
	return nil, constants.ErrNoDeployerKey
}

// ParsePrivateKey parses a hex encoded private key, with or without 0x prefix
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// Address returns the account address of [key]
func Address(key *ecdsa.PrivateKey) common.Address {
	return common.BytesToAddress(crypto.PubkeyToAddress(key.PublicKey).Bytes())
}

// FromMnemonic derives the key at <hdPath>/<index> from a BIP-39 mnemonic
func FromMnemonic(mnemonic string, hdPath string, index uint32) (*ecdsa.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	path, err := ParseHDPath(hdPath)
	if err != nil {
		return nil, err
	}
	path = append(path, index)

	seed := bip39.NewSeed(mnemonic, "")
	// Create master key from seed using btcsuite hdkeychain
	extendedKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	for _, child := range path {
		extendedKey, err = extendedKey.Derive(child)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s/%d: %w", hdPath, index, err)
		}
	}
	ecPrivKey, err := extendedKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get EC private key: %w", err)
	}
	return ecPrivKey.ToECDSA(), nil
}

// ParseHDPath parses paths like m/44'/60'/0'/0 into child indexes
func ParseHDPath(hdPath string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(hdPath), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m/", ErrInvalidHDPath, hdPath)
	}
	path := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		part = strings.TrimRight(part, "'h")
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= uint64(hdkeychain.HardenedKeyStart) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHDPath, hdPath)
		}
		child := uint32(n)
		if hardened {
			child += uint32(hdkeychain.HardenedKeyStart)
		}
		path = append(path, child)
	}
	return path, nil
}
