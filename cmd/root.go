// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/luxfi/ksa-deploy/cmd/deploymentscmd"
	"github.com/luxfi/ksa-deploy/pkg/application"
	"github.com/luxfi/ksa-deploy/pkg/config"
	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/contract"
	"github.com/luxfi/ksa-deploy/pkg/deployer"
	"github.com/luxfi/ksa-deploy/pkg/prompts"
	"github.com/luxfi/ksa-deploy/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	app *application.KSA

	// newClient dials the node; replaced in tests
	newClient deployer.ClientConstructor = contract.Dial

	Version        = "0.1.0"
	cfgFile        string
	logLevel       string
	nonInteractive bool
)

func NewRootCmd() *cobra.Command {
	// rootCmd deploys the token when called without any subcommands
	rootCmd := &cobra.Command{
		Use:   "ksa-deploy",
		Short: "Deploy the KSA ERC-20 token contract",
		Long: `ksa-deploy deploys the KSAToken ERC-20 contract to the configured network
and prints its address.

Network, deployer account and artifacts location come from ksa.config.yaml
(or .json/.toml) in the working directory or $HOME/.ksa, KSA_* environment
variables, and flags, in increasing order of priority.

On success exactly one line is written to stdout:

  ERC-20 contract deployed to address: 0x...

Logs, progress and errors go to stderr. The exit code is 0 on success and 1
on any failure.

QUICK START:

  # Deploy to a local node at http://127.0.0.1:8545
  ksa-deploy --private-key 0x...

  # Deploy to a configured network
  KSA_MNEMONIC="..." ksa-deploy --network sepolia`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: createApp,
		RunE:              deploy,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ksa.config.yaml or $HOME/.ksa/ksa.config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, constants.ConfigLogLevel, constants.DefaultLogLevel, "log level for the application")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, constants.ConfigNonInteractive, false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Show only errors (quiet mode)")
	rootCmd.PersistentFlags().String(constants.ConfigRecordDir, "", "write/read deployment records under this directory")

	rootCmd.Flags().StringP(constants.ConfigNetwork, "n", "", "network to deploy to (env KSA_NETWORK, default is defaultNetwork or localhost)")
	rootCmd.Flags().String(constants.ConfigRPCURL, "", "override the network rpc url (env KSA_RPC_URL)")
	rootCmd.Flags().Uint64(constants.ConfigChainID, 0, "expected chain id, checked against the node")
	rootCmd.Flags().String(constants.ConfigPrivateKey, "", "deployer private key, hex encoded (env KSA_PRIVATE_KEY)")
	rootCmd.Flags().String(constants.ConfigMnemonic, "", "deployer BIP-39 mnemonic (env KSA_MNEMONIC)")
	rootCmd.Flags().String(constants.ConfigContract, constants.DefaultContractName, "contract name, bare or fully qualified")
	rootCmd.Flags().String(constants.ConfigArtifacts, "", "compiled artifacts directory (default is paths.artifacts or ./artifacts)")
	rootCmd.Flags().Duration(constants.ConfigTimeout, constants.DefaultTimeout, "give up waiting for the deployment after this long (0 waits forever)")

	rootCmd.AddCommand(deploymentscmd.NewCmd(app))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir := setupEnv()
	log, err := setupLogging(cmd)
	if err != nil {
		return err
	}

	prompts.SetNonInteractive(nonInteractive)

	v, err := initConfig(cmd, baseDir)
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("config-file", used))
	}
	cf, err := config.Load(v)
	if err != nil {
		return err
	}

	// Interactive by default on TTY, non-interactive when:
	// KSA_NON_INTERACTIVE=1, CI=1, --non-interactive flag, or stdin is piped
	app.Setup(baseDir, log, cf, v, prompts.NewPrompterForMode(cmd.ErrOrStderr()))
	return nil
}

func setupEnv() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.BaseDirName)
}

func setupLogging(cmd *cobra.Command) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	// Adjust log level based on flags
	switch {
	case flagSet(cmd, "debug"):
		level = zapcore.DebugLevel
	case flagSet(cmd, "verbose"):
		level = zapcore.InfoLevel
	case flagSet(cmd, "quiet"):
		level = zapcore.ErrorLevel
	}

	// logs never go to stdout, which only carries the deployed address
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zap.NewAtomicLevelAt(level),
	)
	log := zap.New(core).Named("ksa")

	// create the user facing logger as a global var
	ux.NewUserLog(log, cmd.ErrOrStderr())
	return log, nil
}

func flagSet(cmd *cobra.Command, name string) bool {
	set, err := cmd.Flags().GetBool(name)
	return err == nil && set
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig(cmd *cobra.Command, baseDir string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(constants.DefaultConfigFileName)
		v.AddConfigPath(".")
		if baseDir != "" {
			v.AddConfigPath(baseDir)
		}
	}

	// KSA_RPC_URL -> rpc-url, etc.
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = v.BindEnv(constants.ConfigNetwork, constants.EnvNetwork)
	_ = v.BindEnv(constants.ConfigRPCURL, constants.EnvRPCURL)
	_ = v.BindEnv(constants.ConfigPrivateKey, constants.EnvPrivateKey)
	_ = v.BindEnv(constants.ConfigMnemonic, constants.EnvMnemonic)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file is normal, the built-in localhost network is used
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed reading config file: %w", err)
		}
	}
	return v, nil
}

// run executes the command line [args], returning the process exit code.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	app = application.New()
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "\nERROR: %s\n", err)
		return constants.ExitFailure
	}
	return constants.ExitSuccess
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
