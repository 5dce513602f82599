// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"context"
	"math/big"
	"sync"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/ksa-deploy/pkg/contract"
)

var (
	TestContractAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	TestDeployedCode    = []byte{0x60, 0x80, 0x60, 0x40}
)

// FakeClient is an in-memory contract.Client. Zero values deploy
// successfully at TestContractAddress on chain 31337.
type FakeClient struct {
	mu sync.Mutex

	ChainIDValue *big.Int
	Address      common.Address
	Code         []byte
	Status       uint64
	Token        contract.TokenInfo

	ChainIDErr error
	DeployErr  error
	WaitErr    error
	CodeErr    error
	TokenErr   error

	// WaitHook runs inside WaitMined, before it returns
	WaitHook func()
	// WaitUntilDone makes WaitMined block until its context is done
	WaitUntilDone bool

	DeployOpts *bind.TransactOpts
	DeployArgs []interface{}
	Calls      []string
	Closed     bool
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		ChainIDValue: big.NewInt(31337),
		Address:      TestContractAddress,
		Code:         TestDeployedCode,
		Status:       types.ReceiptStatusSuccessful,
		Token: contract.TokenInfo{
			Name:     "KSA Token",
			Symbol:   "KSA",
			Decimals: 18,
		},
	}
}

func (c *FakeClient) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, call)
}

func (c *FakeClient) ChainID(context.Context) (*big.Int, error) {
	c.record("ChainID")
	if c.ChainIDErr != nil {
		return nil, c.ChainIDErr
	}
	return c.ChainIDValue, nil
}

func (c *FakeClient) DeployContract(
	opts *bind.TransactOpts,
	_ abi.ABI,
	bytecode []byte,
	args ...interface{},
) (common.Address, *types.Transaction, error) {
	c.record("DeployContract")
	c.DeployOpts = opts
	c.DeployArgs = args
	if c.DeployErr != nil {
		return common.Address{}, nil, c.DeployErr
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    0,
		Gas:      opts.GasLimit,
		GasPrice: opts.GasPrice,
		Data:     bytecode,
	})
	return c.Address, tx, nil
}

func (c *FakeClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	c.record("WaitMined")
	if c.WaitHook != nil {
		c.WaitHook()
	}
	if c.WaitUntilDone {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.WaitErr != nil {
		return nil, c.WaitErr
	}
	return &types.Receipt{
		Status:          c.Status,
		ContractAddress: c.Address,
		TxHash:          tx.Hash(),
		BlockNumber:     big.NewInt(7),
		GasUsed:         1_234_567,
	}, nil
}

func (c *FakeClient) CodeAt(context.Context, common.Address) ([]byte, error) {
	c.record("CodeAt")
	if c.CodeErr != nil {
		return nil, c.CodeErr
	}
	return c.Code, nil
}

func (c *FakeClient) TokenInfo(context.Context, common.Address) (contract.TokenInfo, error) {
	c.record("TokenInfo")
	if c.TokenErr != nil {
		return contract.TokenInfo{}, c.TokenErr
	}
	return c.Token, nil
}

func (c *FakeClient) Close() {
	c.Closed = true
}
