/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/greencultureai/indy-sdk/cmd/indytest/version"
	"github.com/greencultureai/indy-sdk/integration/nwo/cmd/genesis"
	"github.com/greencultureai/indy-sdk/integration/nwo/cmd/pool"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/spf13/cobra"
)

func main() {
	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if NewRootCmd().Execute() != nil {
		os.Exit(1)
	}
}

// NewRootCmd describes the tool and defaults to printing the help message.
func NewRootCmd() *cobra.Command {
	var configPath string
	mainCmd := &cobra.Command{Use: version.ProgramName}
	mainCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory holding indy.yaml (default $"+config.CfgPathEnv+", ./ and the user config directory)")

	load := func() (*config.Provider, error) {
		return config.NewProvider(configPath)
	}
	mainCmd.AddCommand(genesis.NewCmd(genesis.Loader(load)))
	mainCmd.AddCommand(genesis.PoolConfigCmd())
	mainCmd.AddCommand(pool.NewCmd(pool.Loader(load)))
	mainCmd.AddCommand(version.Cmd())

	return mainCmd
}
