// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	DefaultPerms755    = 0o755
	WriteReadReadPerms = 0o644

	BaseDirName = ".ksa"

	// DefaultContractName is the token contract deployed when --contract is not given
	DefaultContractName = "KSAToken"

	// DeployedMessage prefixes the single line printed on success
	DeployedMessage = "ERC-20 contract deployed to address:"

	DefaultArtifactsDir = "artifacts"
	BuildInfoDir        = "build-info"
	DebugArtifactSuffix = ".dbg.json"

	DefaultConfigFileName = "ksa.config"
	DeploymentRecordExt   = ".yaml"

	LocalNetwork    = "localhost"
	LocalNetworkURL = "http://127.0.0.1:8545"

	DefaultHDPath   = "m/44'/60'/0'/0"
	DefaultLogLevel = "warn"

	// DefaultTimeout of zero waits for the deployment indefinitely
	DefaultTimeout = time.Duration(0)

	SpinnerWarnAfter = 30 * time.Second

	// exit codes
	ExitSuccess = 0
	ExitFailure = 1
)

// Config keys, shared by flags, env vars and the config file
const (
	ConfigNetwork        = "network"
	ConfigRPCURL         = "rpc-url"
	ConfigChainID        = "chain-id"
	ConfigPrivateKey     = "private-key"
	ConfigMnemonic       = "mnemonic"
	ConfigContract       = "contract"
	ConfigArtifacts      = "artifacts"
	ConfigTimeout        = "timeout"
	ConfigRecordDir      = "record-dir"
	ConfigLogLevel       = "log-level"
	ConfigNonInteractive = "non-interactive"
)

// Environment variables
const (
	EnvPrefix     = "KSA"
	EnvNetwork    = "KSA_NETWORK"
	EnvRPCURL     = "KSA_RPC_URL"
	EnvPrivateKey = "KSA_PRIVATE_KEY"
	EnvMnemonic   = "KSA_MNEMONIC"
)
