// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploymentscmd

import (
	"errors"
	"strconv"
	"time"

	"github.com/luxfi/ksa-deploy/pkg/application"
	"github.com/luxfi/ksa-deploy/pkg/deployments"
	"github.com/luxfi/ksa-deploy/pkg/ux"
	"github.com/spf13/cobra"
)

var app *application.KSA

var ErrNoRecordDir = errors.New("no deployments directory configured: use --record-dir or paths.deployments")

// ksa-deploy deployments
func NewCmd(injectedApp *application.KSA) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List recorded deployments",
		Long: `The deployments command lists the deployment records written by previous
runs with --record-dir (or paths.deployments in the config file).`,
		Args: cobra.NoArgs,
		RunE: listDeployments,
	}
	app = injectedApp
	return cmd
}

func listDeployments(cmd *cobra.Command, _ []string) error {
	dir := app.GetRecordDir()
	if dir == "" {
		return ErrNoRecordDir
	}
	records, err := deployments.List(dir)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ux.Logger.PrintToUser("No deployments found in %s", dir)
		return nil
	}
	table := ux.NewTable(cmd.OutOrStdout(), "Network", "Contract", "Address", "Chain ID", "Block", "Deployed At")
	for _, rec := range records {
		if err := table.Append([]string{
			rec.Network,
			rec.Contract,
			rec.Address,
			strconv.FormatUint(rec.ChainID, 10),
			ux.ConvertToStringWithThousandSeparator(rec.BlockNumber),
			rec.DeployedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
