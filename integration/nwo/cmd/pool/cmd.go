/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils"
	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/core/callback"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
	"github.com/greencultureai/indy-sdk/platform/indy/pool"
	"github.com/spf13/cobra"
)

var logger = logging.MustGetLogger("indy.cmd.pool")

// Identifier is the DID of the trustee of the local test pool.
const Identifier = "V4SGRU86Z58d6TV7PBUe6f"

// Loader returns the configuration the commands run with.
type Loader func() (*config.Provider, error)

// Options tunes a smoke run.
type Options struct {
	// Prefix of the generated pool name
	Prefix string
	// Attempts to open the pool, Infinitely retries until the context is done
	Attempts int
	// RetryDelay is the delay before the second attempt, doubled afterwards
	RetryDelay time.Duration
}

// NewCmd returns the Cobra Command for Smoke
func NewCmd(load Loader) *cobra.Command {
	opts := Options{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run a pool lifecycle.",
		Long: `Create, open, refresh, query, close and delete a test pool with the configured driver,
printing the reply to the query.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			cp, err := load()
			if err != nil {
				return err
			}
			return Smoke(cmd.Context(), cp, opts, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.Prefix, "prefix", "smoke", "prefix of the generated pool name")
	flags.IntVar(&opts.Attempts, "attempts", 1, "attempts to open the pool while it does not reach consensus, -1 retries until interrupted")
	flags.DurationVar(&opts.RetryDelay, "retry-delay", time.Second, "delay before retrying to open the pool")

	return cmd
}

// Smoke runs the whole pool lifecycle once and writes the query reply to out.
func Smoke(ctx context.Context, cp *config.Provider, opts Options, out io.Writer) (err error) {
	d, release, err := NewDriver(cp)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := release(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed releasing driver")
		}
	}()
	s, err := pool.NewServiceFromConfig(d, cp)
	if err != nil {
		return err
	}

	name := utils.GeneratePoolName(opts.Prefix)
	logger.Infof("smoke test on pool [%s] with driver [%s]", name, cp.Driver())
	path, err := s.Fixtures().WriteTestPool(name, cp.PoolNodes(), "")
	if err != nil {
		return err
	}
	poolConfig, err := genesis.PoolConfigJSON(path)
	if err != nil {
		return err
	}
	if err := s.CreateLedgerConfig(ctx, name, poolConfig); err != nil {
		return err
	}
	// cleanup runs even when ctx is canceled, each call bounded by the short timeout
	cleanup := context.WithoutCancel(ctx)
	defer func() {
		if derr := s.Delete(cleanup, name); derr != nil && err == nil {
			err = derr
		}
	}()

	h, err := Open(ctx, s, name, opts)
	if err != nil {
		return err
	}
	reply, err := query(ctx, s, h)
	if cerr := s.Close(cleanup, h); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, reply)
	return err
}

func query(ctx context.Context, s *pool.Service, h driver.PoolHandle) (string, error) {
	if err := s.Refresh(ctx, h); err != nil {
		return "", err
	}
	request, err := NymRequest(Identifier)
	if err != nil {
		return "", err
	}
	return s.SubmitRequest(ctx, h, request)
}

// Open opens the pool, retrying while it cannot reach consensus or does not answer in time.
func Open(ctx context.Context, s *pool.Service, name string, opts Options) (driver.PoolHandle, error) {
	attempts := opts.Attempts
	if attempts == 0 {
		attempts = 1
	}
	var h driver.PoolHandle
	err := utils.NewRetrier(attempts, opts.RetryDelay, true).RunWithErrors(ctx, func() (bool, error) {
		var err error
		h, err = s.Open(ctx, name, "")
		return err == nil || !retriable(err), err
	})
	return h, err
}

func retriable(err error) bool {
	if errors.HasCause(err, callback.ErrTimeout) {
		return true
	}
	code, ok := driver.CodeOf(err)
	return ok && (code == driver.PoolLedgerTerminated || code == driver.PoolLedgerTimeout)
}

// NymRequest builds the read request of a NYM transaction.
func NymRequest(dest string) (string, error) {
	raw, err := json.Marshal(map[string]any{
		"reqId":      utils.NextRequestID(),
		"identifier": Identifier,
		"operation": map[string]string{
			"type": "105",
			"dest": dest,
		},
		"protocolVersion": 2,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed marshalling request")
	}
	return string(raw), nil
}
