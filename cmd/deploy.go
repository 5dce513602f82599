// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"io"

	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/deployer"
	"github.com/luxfi/ksa-deploy/pkg/key"
	"github.com/luxfi/ksa-deploy/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// ksa-deploy
func deploy(cmd *cobra.Command, _ []string) error {
	network, err := app.SelectNetwork()
	if err != nil {
		return err
	}
	deployerKey, err := key.Resolve(network, app.Prompt)
	if err != nil {
		return err
	}
	contractName := app.Viper.GetString(constants.ConfigContract)
	ux.Logger.Info("deploying %s to %s (%s) from %s", contractName, network.Name, network.URL, key.Address(deployerKey).Hex())

	_, err = deployer.Run(cmd.Context(), deployer.Options{
		ContractName: contractName,
		ArtifactsDir: app.GetArtifactsDir(),
		Network:      network,
		Key:          deployerKey,
		RecordDir:    app.GetRecordDir(),
		Log:          app.Log,
		Progress:     progressWriter(cmd),
		NewClient:    newClient,
	}, cmd.OutOrStdout())
	return err
}

// progressWriter is stderr, or nothing when only errors are shown
func progressWriter(cmd *cobra.Command) io.Writer {
	if !app.Log.Core().Enabled(zapcore.WarnLevel) {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}
