// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"github.com/luxfi/ksa-deploy/pkg/config"
	"github.com/luxfi/ksa-deploy/pkg/prompts"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type KSA struct {
	Log     *zap.Logger
	baseDir string
	Conf    *config.Config
	Viper   *viper.Viper
	Prompt  prompts.Prompter
}

func New() *KSA {
	return &KSA{}
}

func (app *KSA) Setup(baseDir string, log *zap.Logger, conf *config.Config, v *viper.Viper, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Viper = v
	app.Prompt = prompt
}

func (app *KSA) GetBaseDir() string {
	return app.baseDir
}

// SelectNetwork resolves the target network with flag and env overrides applied
func (app *KSA) SelectNetwork() (config.Network, error) {
	return app.Conf.SelectNetwork(app.Viper)
}

func (app *KSA) GetArtifactsDir() string {
	return app.Conf.ArtifactsDir(app.Viper)
}

// GetRecordDir returns the deployment records directory, "" when records are disabled
func (app *KSA) GetRecordDir() string {
	return app.Conf.RecordDir(app.Viper)
}

