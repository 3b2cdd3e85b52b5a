/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package genesis

import (
	"fmt"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
	"github.com/spf13/cobra"
)

const (
	Valid        = "valid"
	InvalidNodes = "invalid-nodes"
	WrongAlias   = "wrong-alias"
)

// Loader returns the configuration the commands take their defaults from.
type Loader func() (*config.Provider, error)

// Options selects the fixture written by Write.
type Options struct {
	Pool    string
	Nodes   int
	Variant string
	IP      string
	Out     string
}

// NewCmd returns the Cobra Command writing genesis fixtures
func NewCmd(load Loader) *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Write a genesis transactions file.",
		Long:  `Write the genesis transactions file of a test pool and print its path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			cp, err := load()
			if err != nil {
				return err
			}
			path, err := Write(cp, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.Pool, "pool", "p", "", "pool name, the file is <fixtures.dir>/<pool>.txn unless --out is set")
	flags.IntVarP(&opts.Nodes, "nodes", "n", 0, "number of validators, 1 to 4 (default pool.nodes)")
	flags.StringVar(&opts.Variant, "variant", Valid, "fixture variant: valid, invalid-nodes or wrong-alias")
	flags.StringVar(&opts.IP, "ip", "", "node and client address (default pool.ip)")
	flags.StringVarP(&opts.Out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

// Write writes the fixture selected by opts and returns its path.
func Write(cp *config.Provider, opts *Options) (string, error) {
	w := &genesis.Writer{Dir: cp.FixturesDir(), IP: cp.PoolIP()}
	if len(opts.IP) != 0 {
		w.IP = opts.IP
	}
	switch opts.Variant {
	case Valid:
		nodes := opts.Nodes
		if nodes == 0 {
			nodes = cp.PoolNodes()
		}
		return w.WriteTestPool(opts.Pool, nodes, opts.Out)
	case InvalidNodes:
		return w.WriteInvalidNodes(opts.Pool, opts.Out)
	case WrongAlias:
		return w.WriteWrongAlias(opts.Pool, opts.Out)
	default:
		return "", errors.Errorf("unknown variant [%s], expected one of [%s, %s, %s]", opts.Variant, Valid, InvalidNodes, WrongAlias)
	}
}

// PoolConfigCmd returns the Cobra Command printing the pool config for a genesis file
func PoolConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "pool-config",
		Short: "Print a pool config.",
		Long:  `Print the pool ledger config JSON pointing at a genesis transactions file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := genesis.PoolConfigJSON(path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cfg)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "genesis", "g", "", "path of the genesis transactions file")
	_ = cmd.MarkFlagRequired("genesis")

	return cmd
}
