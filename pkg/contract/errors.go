// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/core/types"
)

var (
	ErrConstructorArgs     = errors.New("wrong number of constructor arguments")
	ErrDeploymentReverted  = errors.New("deployment transaction reverted")
	ErrNoCodeAfterDeploy   = errors.New("no contract code at deployed address")
	ErrDeploymentNotIssued = errors.New("deployment transaction was not issued")
)

// TransactionError wraps [err] with the [tx] hash (or a note on the tx not
// being submitted) and a descriptive [msg] formatted with [args]
func TransactionError(tx *types.Transaction, err error, msg string, args ...interface{}) error {
	msgSuffix := ": %w"
	if tx != nil {
		msgSuffix += fmt.Sprintf(" (txHash=%s)", tx.Hash().String())
	} else {
		msgSuffix += " (tx failed to be submitted)"
	}
	args = append(args, err)
	return fmt.Errorf(msg+msgSuffix, args...)
}
