// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/erc20-go/erc20"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/ethclient"
	"golang.org/x/sync/errgroup"
)

// Client is the subset of an EVM node the deployment flow talks to
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	DeployContract(opts *bind.TransactOpts, parsed abi.ABI, bytecode []byte, args ...interface{}) (common.Address, *types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)
	TokenInfo(ctx context.Context, token common.Address) (TokenInfo, error)
	Close()
}

// TokenInfo holds ERC20 token metadata
type TokenInfo struct {
	Name     string
	Symbol   string
	Decimals uint8
}

type ethClient struct {
	client *ethclient.Client
}

// Dial connects to the EVM json-rpc endpoint at [rpcURL]
func Dial(rpcURL string) (Client, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	return &ethClient{client: client}, nil
}

func (c *ethClient) ChainID(ctx context.Context) (*big.Int, error) {
	return c.client.ChainID(ctx)
}

func (c *ethClient) DeployContract(
	opts *bind.TransactOpts,
	parsed abi.ABI,
	bytecode []byte,
	args ...interface{},
) (common.Address, *types.Transaction, error) {
	address, tx, _, err := bind.DeployContract(opts, parsed, bytecode, c.client, args...)
	return address, tx, err
}

func (c *ethClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.client, tx)
}

func (c *ethClient) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return c.client.CodeAt(ctx, account, nil)
}

// TokenInfo reads name, symbol and decimals of [token] concurrently
func (c *ethClient) TokenInfo(ctx context.Context, token common.Address) (TokenInfo, error) {
	binding, err := erc20.NewGGToken(token, c.client)
	if err != nil {
		return TokenInfo{}, err
	}
	info := TokenInfo{}
	opts := &bind.CallOpts{Context: ctx}
	g := errgroup.Group{}
	g.Go(func() error {
		name, err := binding.Name(opts)
		if err != nil {
			return fmt.Errorf("failed to read token name: %w", err)
		}
		info.Name = name
		return nil
	})
	g.Go(func() error {
		symbol, err := binding.Symbol(opts)
		if err != nil {
			return fmt.Errorf("failed to read token symbol: %w", err)
		}
		info.Symbol = symbol
		return nil
	})
	g.Go(func() error {
		decimals, err := binding.Decimals(opts)
		if err != nil {
			return fmt.Errorf("failed to read token decimals: %w", err)
		}
		info.Decimals = decimals
		return nil
	})
	if err := g.Wait(); err != nil {
		return TokenInfo{}, err
	}
	return info, nil
}

func (c *ethClient) Close() {
	c.client.Close()
}
