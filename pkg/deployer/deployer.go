// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer runs a single contract deployment: factory, deploy,
// wait, address, and the one line of output scripts rely on.
package deployer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ksa-deploy/pkg/artifacts"
	"github.com/luxfi/ksa-deploy/pkg/config"
	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/contract"
	"github.com/luxfi/ksa-deploy/pkg/deployments"
	"github.com/luxfi/ksa-deploy/pkg/ux"
	"go.uber.org/zap"
)

var ErrNoClient = errors.New("no client constructor configured")

// ClientConstructor dials the node at [rpcURL]
type ClientConstructor func(rpcURL string) (contract.Client, error)

type Options struct {
	ContractName string
	ArtifactsDir string
	Network      config.Network
	Key          *ecdsa.PrivateKey
	// RecordDir enables deployment records when not empty
	RecordDir string
	Log       *zap.Logger
	// Progress receives the spinner. Defaults to io.Discard.
	Progress  io.Writer
	NewClient ClientConstructor
	// Now is used for the record timestamp. Defaults to time.Now.
	Now func() time.Time
}

type Result struct {
	Contract   string
	Address    common.Address
	TxHash     common.Hash
	Deployer   common.Address
	ChainID    uint64
	RecordPath string
	Token      *contract.TokenInfo
}

func (o *Options) setDefaults() {
	if o.ContractName == "" {
		o.ContractName = constants.DefaultContractName
	}
	if o.ArtifactsDir == "" {
		o.ArtifactsDir = constants.DefaultArtifactsDir
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

func (o *Options) factoryOptions() []contract.FactoryOption {
	var options []contract.FactoryOption
	if o.Network.GasLimit != 0 {
		options = append(options, contract.WithGasLimit(o.Network.GasLimit))
	}
	if o.Network.GasPrice != 0 {
		options = append(options, contract.WithGasPrice(new(big.Int).SetUint64(o.Network.GasPrice)))
	}
	return options
}

// Run deploys opts.ContractName to opts.Network. On success exactly one
// line is written to [stdout]; on failure nothing is.
func Run(ctx context.Context, opts Options, stdout io.Writer) (*Result, error) {
	opts.setDefaults()
	if opts.NewClient == nil {
		return nil, ErrNoClient
	}
	if opts.Key == nil {
		return nil, constants.ErrNoDeployerKey
	}
	if opts.Network.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Network.Timeout)
		defer cancel()
	}
	log := opts.Log.With(
		zap.String("network", opts.Network.Name),
		zap.String("contract", opts.ContractName),
	)

	artifact, err := artifacts.Load(opts.ArtifactsDir, opts.ContractName)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded artifact", zap.String("path", artifact.Path))

	client, err := opts.NewClient(opts.Network.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Network.URL, err)
	}
	defer client.Close()

	factory, err := contract.GetContractFactory(ctx, client, artifact, opts.Key, opts.Network.ChainID, opts.factoryOptions()...)
	if err != nil {
		return nil, err
	}
	log.Info("deploying", zap.Stringer("deployer", factory.Deployer()))

	deployment, err := factory.Deploy(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("deployment issued", zap.Stringer("txHash", deployment.Transaction().Hash()))

	spinner := ux.StartSpinner(opts.Progress, fmt.Sprintf("Deploying %s", factory.ContractName()), constants.SpinnerWarnAfter)
	err = deployment.WaitForDeployment(ctx)
	spinner.Stop(err)
	if err != nil {
		return nil, err
	}

	address, err := deployment.Address(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(stdout, "%s %s\n", constants.DeployedMessage, address.Hex()); err != nil {
		return nil, fmt.Errorf("failed to write deployed address: %w", err)
	}

	result := &Result{
		Contract: factory.ContractName(),
		Address:  address,
		TxHash:   deployment.Transaction().Hash(),
		Deployer: factory.Deployer(),
		ChainID:  factory.ChainID(),
	}
	if receipt := deployment.Receipt(); receipt != nil && receipt.BlockNumber != nil {
		log.Info("deployment mined",
			zap.Uint64("block", receipt.BlockNumber.Uint64()),
			zap.String("gasUsed", ux.ConvertToStringWithThousandSeparator(receipt.GasUsed)),
		)
	}

	// the contract is deployed at this point, later failures only warn
	token, err := client.TokenInfo(ctx, address)
	if err != nil {
		log.Warn("failed to read token metadata", zap.Error(err))
	} else {
		result.Token = &token
		log.Info("token",
			zap.String("name", token.Name),
			zap.String("symbol", token.Symbol),
			zap.Uint8("decimals", token.Decimals),
		)
	}

	if opts.RecordDir != "" {
		path, err := deployments.Save(opts.RecordDir, newRecord(opts, deployment, result))
		if err != nil {
			log.Warn("failed to save deployment record", zap.Error(err))
		} else {
			result.RecordPath = path
			log.Info("saved deployment record", zap.String("path", path))
		}
	}
	return result, nil
}

func newRecord(opts Options, deployment *contract.Deployment, result *Result) deployments.Record {
	rec := deployments.Record{
		Contract:   result.Contract,
		Network:    opts.Network.Name,
		ChainID:    result.ChainID,
		Address:    result.Address.Hex(),
		TxHash:     result.TxHash.Hex(),
		Deployer:   result.Deployer.Hex(),
		DeployedAt: opts.Now().UTC(),
	}
	if receipt := deployment.Receipt(); receipt != nil {
		rec.GasUsed = receipt.GasUsed
		if receipt.BlockNumber != nil {
			rec.BlockNumber = receipt.BlockNumber.Uint64()
		}
	}
	return rec
}

