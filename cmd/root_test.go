// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/ksa-deploy/internal/testutils"
	"github.com/luxfi/ksa-deploy/pkg/constants"
	"github.com/luxfi/ksa-deploy/pkg/contract"
	"github.com/luxfi/ksa-deploy/pkg/deployments"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

const deployedLine = "ERC-20 contract deployed to address: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n"

type invocation struct {
	exitCode int
	stdout   string
	stderr   string
}

func invoke(args ...string) invocation {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return invocation{exitCode: code, stdout: stdout.String(), stderr: stderr.String()}
}

var _ = ginkgo.Describe("[ksa-deploy]", func() {
	var (
		client       *testutils.FakeClient
		dialedURL    string
		workDir      string
		artifactsDir string
	)

	ginkgo.BeforeEach(func() {
		client = testutils.NewFakeClient()
		dialedURL = ""
		newClient = func(rpcURL string) (contract.Client, error) {
			dialedURL = rpcURL
			return client, nil
		}

		workDir = ginkgo.GinkgoT().TempDir()
		ginkgo.GinkgoT().Setenv("HOME", workDir)
		ginkgo.GinkgoT().Setenv(constants.EnvNetwork, "")
		ginkgo.GinkgoT().Setenv(constants.EnvRPCURL, "")
		ginkgo.GinkgoT().Setenv(constants.EnvPrivateKey, "")
		ginkgo.GinkgoT().Setenv(constants.EnvMnemonic, "")
		ginkgo.GinkgoT().Setenv("KSA_NON_INTERACTIVE", "1")

		artifactsDir = filepath.Join(workDir, "artifacts")
		testutils.WriteArtifact(ginkgo.GinkgoT(), artifactsDir, testutils.TokenArtifact())
	})

	ginkgo.AfterEach(func() {
		newClient = contract.Dial
	})

	ginkgo.It("prints exactly one line with the deployed address", func() {
		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(result.stdout).Should(gomega.Equal(deployedLine))
		gomega.Expect(dialedURL).Should(gomega.Equal(constants.LocalNetworkURL))
		gomega.Expect(result.stderr).ShouldNot(gomega.ContainSubstring("ERROR"))
	})

	ginkgo.It("shows deployment progress on stderr", func() {
		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring("Deploying KSAToken..."))
	})

	ginkgo.It("hides deployment progress with --quiet", func() {
		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey, "--quiet")

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(result.stdout).Should(gomega.Equal(deployedLine))
		gomega.Expect(result.stderr).Should(gomega.BeEmpty())
	})

	ginkgo.It("logs the deployer account with --verbose", func() {
		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey, "--verbose")

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(result.stdout).Should(gomega.Equal(deployedLine))
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring("from " + testutils.TestDeployer))
	})

	ginkgo.It("keeps stdout empty until the deployment completes", func() {
		var stdout, stderr bytes.Buffer
		waited := false
		client.WaitHook = func() {
			waited = true
			gomega.Expect(stdout.Len()).Should(gomega.BeZero())
		}

		code := run([]string{"--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey}, &stdout, &stderr)

		gomega.Expect(code).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(waited).Should(gomega.BeTrue())
		gomega.Expect(stdout.String()).Should(gomega.Equal(deployedLine))
	})

	ginkgo.It("fails with exit code 1 and no stdout when the deployment reverts", func() {
		client.Status = types.ReceiptStatusFailed

		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stdout).Should(gomega.BeEmpty())
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring("ERROR: "))
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring(contract.ErrDeploymentReverted.Error()))
	})

	ginkgo.It("fails when the node cannot be reached", func() {
		newClient = func(string) (contract.Client, error) {
			return nil, errors.New("connection refused")
		}

		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stdout).Should(gomega.BeEmpty())
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring("connection refused"))
	})

	ginkgo.It("fails without a deployer key in non-interactive mode", func() {
		result := invoke("--artifacts", artifactsDir)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stdout).Should(gomega.BeEmpty())
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring(constants.ErrNoDeployerKey.Error()))
	})

	ginkgo.It("fails when the artifact is missing", func() {
		result := invoke("--artifacts", artifactsDir, "--private-key", testutils.TestPrivateKey, "--contract", "Missing")

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stdout).Should(gomega.BeEmpty())
	})

	ginkgo.It("rejects positional arguments", func() {
		result := invoke("extra")

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stdout).Should(gomega.BeEmpty())
	})

	ginkgo.It("reads the network and account from environment variables", func() {
		ginkgo.GinkgoT().Setenv(constants.EnvRPCURL, "http://10.1.1.1:9650/ext/bc/C/rpc")
		ginkgo.GinkgoT().Setenv(constants.EnvPrivateKey, testutils.TestPrivateKey)

		result := invoke("--artifacts", artifactsDir)

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
		gomega.Expect(result.stdout).Should(gomega.Equal(deployedLine))
		gomega.Expect(dialedURL).Should(gomega.Equal("http://10.1.1.1:9650/ext/bc/C/rpc"))
	})

	ginkgo.Context("with a config file", func() {
		var configPath string

		ginkgo.BeforeEach(func() {
			recordDir := filepath.Join(workDir, "deployments")
			configPath = filepath.Join(workDir, "ksa.config.yaml")
			configYAML := strings.Join([]string{
				"defaultNetwork: devnet",
				"networks:",
				"  devnet:",
				"    url: http://127.0.0.1:9650/ext/bc/C/rpc",
				"    chainId: 31337",
				"    mnemonic: test test test test test test test test test test test junk",
				"    gas: 3000000",
				"paths:",
				"  artifacts: " + artifactsDir,
				"  deployments: " + recordDir,
			}, "\n")
			gomega.Expect(os.WriteFile(configPath, []byte(configYAML), 0o600)).Should(gomega.Succeed())
		})

		ginkgo.It("deploys to the default network and records the deployment", func() {
			result := invoke("--config", configPath)

			gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitSuccess))
			gomega.Expect(result.stdout).Should(gomega.Equal(deployedLine))
			gomega.Expect(dialedURL).Should(gomega.Equal("http://127.0.0.1:9650/ext/bc/C/rpc"))
			gomega.Expect(client.DeployOpts.GasLimit).Should(gomega.Equal(uint64(3_000_000)))

			records, err := deployments.List(filepath.Join(workDir, "deployments"))
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(records).Should(gomega.HaveLen(1))
			gomega.Expect(records[0].Network).Should(gomega.Equal("devnet"))
			gomega.Expect(records[0].Deployer).Should(gomega.Equal(testutils.TestDeployer))

			listed := invoke("deployments", "--config", configPath)
			gomega.Expect(listed.exitCode).Should(gomega.Equal(constants.ExitSuccess))
			gomega.Expect(listed.stdout).Should(gomega.ContainSubstring("0x5FbDB2315678afecb367f032d93F642f64180aa3"))
			gomega.Expect(listed.stdout).Should(gomega.ContainSubstring("devnet"))
		})

		ginkgo.It("fails on an unknown network", func() {
			result := invoke("--config", configPath, "--network", "mainnet")

			gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
			gomega.Expect(result.stdout).Should(gomega.BeEmpty())
			gomega.Expect(result.stderr).Should(gomega.ContainSubstring(constants.ErrUnknownNetwork.Error()))
		})

		ginkgo.It("fails on a chain id mismatch", func() {
			client.ChainIDValue.SetUint64(1)

			result := invoke("--config", configPath)

			gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
			gomega.Expect(result.stdout).Should(gomega.BeEmpty())
			gomega.Expect(result.stderr).Should(gomega.ContainSubstring(constants.ErrChainIDMismatch.Error()))
		})
	})

	ginkgo.It("fails to list deployments without a records directory", func() {
		result := invoke("deployments")

		gomega.Expect(result.exitCode).Should(gomega.Equal(constants.ExitFailure))
		gomega.Expect(result.stderr).Should(gomega.ContainSubstring("no deployments directory configured"))
	})
})
