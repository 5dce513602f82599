// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package application

import (
	"path/filepath"
	"testing"

	"github.com/luxfi/ksa-deploy/pkg/config"
	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/prompts"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, settings map[string]any) *KSA {
	t.Helper()
	v := viper.New()
	for k, val := range settings {
		v.Set(k, val)
	}
	conf, err := config.Load(v)
	require.NoError(t, err)
	app := New()
	app.Setup(t.TempDir(), zap.NewNop(), conf, v, prompts.NewNonInteractivePrompter())
	return app
}

func TestSelectNetworkDefaultsToLocalhost(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, nil)

	network, err := app.SelectNetwork()
	require.NoError(err)
	require.Equal(constants.LocalNetwork, network.Name)
	require.Equal(constants.LocalNetworkURL, network.URL)
}

func TestSelectNetworkAppliesOverrides(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, map[string]any{
		constants.ConfigRPCURL:     "http://10.0.0.1:8545",
		constants.ConfigPrivateKey: "0x01",
	})

	network, err := app.SelectNetwork()
	require.NoError(err)
	require.Equal("http://10.0.0.1:8545", network.URL)
	require.Equal([]string{"0x01"}, network.Accounts)
}

func TestDirs(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, nil)
	require.Equal(constants.DefaultArtifactsDir, app.GetArtifactsDir())
	require.Empty(app.GetRecordDir())
	require.NotEmpty(app.GetBaseDir())

	recordDir := filepath.Join(t.TempDir(), "deployments")
	app.Viper.Set(constants.ConfigRecordDir, recordDir)
	app.Viper.Set(constants.ConfigArtifacts, "out")
	require.Equal(recordDir, app.GetRecordDir())
	require.Equal("out", app.GetArtifactsDir())
}
