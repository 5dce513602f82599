// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrMissingNetworkURL = errors.New("network has no rpc url")
	ErrNoDeployerKey     = errors.New("no deployer key configured: use --private-key, KSA_PRIVATE_KEY, network accounts or a mnemonic")
	ErrChainIDMismatch   = errors.New("configured chain id does not match the network")
)
