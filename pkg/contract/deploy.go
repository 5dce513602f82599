// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/ksa-deploy/pkg/artifacts"
	"github.com/luxfi/ksa-deploy/pkg/constants"
)

// Factory deploys instances of one compiled contract, signed by one key
type Factory struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	client   Client
	signer   *bind.TransactOpts
	chainID  uint64
}

type FactoryOption func(*bind.TransactOpts)

// WithGasLimit fixes the gas limit instead of estimating it
func WithGasLimit(gasLimit uint64) FactoryOption {
	return func(opts *bind.TransactOpts) {
		opts.GasLimit = gasLimit
	}
}

// WithGasPrice issues legacy transactions at a fixed gas price (wei)
func WithGasPrice(gasPrice *big.Int) FactoryOption {
	return func(opts *bind.TransactOpts) {
		opts.GasPrice = gasPrice
	}
}

// GetContractFactory binds [artifact] to [client], signing with [key].
// When [expectedChainID] is not zero it must match the chain id reported by the node.
func GetContractFactory(
	ctx context.Context,
	client Client,
	artifact *artifacts.Artifact,
	key *ecdsa.PrivateKey,
	expectedChainID uint64,
	options ...FactoryOption,
) (*Factory, error) {
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	bytecode, err := artifact.CreationCode()
	if err != nil {
		return nil, err
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expectedChainID != 0 && (!chainID.IsUint64() || chainID.Uint64() != expectedChainID) {
		return nil, fmt.Errorf("%w: configured %d, node reports %s", constants.ErrChainIDMismatch, expectedChainID, chainID)
	}
	signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	for _, option := range options {
		option(signer)
	}
	return &Factory{
		name:     artifact.ContractName,
		abi:      parsed,
		bytecode: bytecode,
		client:   client,
		signer:   signer,
		chainID:  chainID.Uint64(),
	}, nil
}

func (f *Factory) ContractName() string {
	return f.name
}

// ChainID is the chain the factory deploys to, as reported by the node
func (f *Factory) ChainID() uint64 {
	return f.chainID
}

// Deployer returns the address paying for, and owning, the deployment
func (f *Factory) Deployer() common.Address {
	return f.signer.From
}

// Deploy issues the contract creation transaction. It does not wait for it
// to be mined; see [Deployment.WaitForDeployment].
func (f *Factory) Deploy(ctx context.Context, args ...interface{}) (*Deployment, error) {
	if expected := len(f.abi.Constructor.Inputs); expected != len(args) {
		return nil, fmt.Errorf("%w for %s: expected %d, got %d", ErrConstructorArgs, f.name, expected, len(args))
	}
	opts := *f.signer
	opts.Context = ctx
	address, tx, err := f.client.DeployContract(&opts, f.abi, f.bytecode, args...)
	if err != nil {
		return nil, TransactionError(tx, err, "failed to deploy %s", f.name)
	}
	return &Deployment{
		client:  f.client,
		name:    f.name,
		address: address,
		tx:      tx,
	}, nil
}

// Deployment tracks one issued contract creation transaction
type Deployment struct {
	client  Client
	name    string
	address common.Address
	tx      *types.Transaction
	receipt *types.Receipt
}

func (d *Deployment) Transaction() *types.Transaction {
	return d.tx
}

// Receipt is nil until WaitForDeployment succeeds
func (d *Deployment) Receipt() *types.Receipt {
	return d.receipt
}

// WaitForDeployment blocks until the creation transaction is mined and
// the contract code is present at the deployed address.
func (d *Deployment) WaitForDeployment(ctx context.Context) error {
	if d.receipt != nil {
		return nil
	}
	if d.tx == nil {
		return ErrDeploymentNotIssued
	}
	receipt, err := d.client.WaitMined(ctx, d.tx)
	if err != nil {
		return TransactionError(d.tx, err, "failed waiting for %s deployment", d.name)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return TransactionError(d.tx, ErrDeploymentReverted, "%s deployment failed", d.name)
	}
	if receipt.ContractAddress != (common.Address{}) {
		d.address = receipt.ContractAddress
	}
	code, err := d.client.CodeAt(ctx, d.address)
	if err != nil {
		return TransactionError(d.tx, err, "failed to get code at %s", d.address.Hex())
	}
	if len(code) == 0 {
		return TransactionError(d.tx, ErrNoCodeAfterDeploy, "%s deployment at %s", d.name, d.address.Hex())
	}
	d.receipt = receipt
	return nil
}

// Address resolves the deployed contract address, waiting for the
// deployment if needed.
func (d *Deployment) Address(ctx context.Context) (common.Address, error) {
	if err := d.WaitForDeployment(ctx); err != nil {
		return common.Address{}, err
	}
	return d.address, nil
}
