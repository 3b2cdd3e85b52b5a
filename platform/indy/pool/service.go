/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
	"github.com/greencultureai/indy-sdk/platform/indy/config"
	"github.com/greencultureai/indy-sdk/platform/indy/core/callback"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var logger = logging.MustGetLogger("indy.pool")

const (
	CreateConfigOp = "create_pool_ledger_config"
	OpenOp         = "open_pool_ledger"
	RefreshOp      = "refresh_pool_ledger"
	CloseOp        = "close_pool_ledger"
	DeleteConfigOp = "delete_pool_ledger_config"
	SubmitOp       = "submit_request"
)

type completion struct {
	code     driver.ErrorCode
	pool     driver.PoolHandle
	response string
}

// Service turns the callback-based driver API into blocking calls.
// Every call waits for its own completion; calls are independent and safe
// for concurrent use.
type Service struct {
	driver  driver.Driver
	pending *callback.Registry[chan completion]

	short  time.Duration
	medium time.Duration

	fixtures *genesis.Writer
	nodes    int

	tracer  trace.Tracer
	metrics *Metrics
	logger  logging.Logger
}

type Option func(*Service)

// WithTimeouts sets the completion waits of quick calls (create, refresh, close,
// delete) and of calls involving the pool nodes (open, submit).
func WithTimeouts(short, medium time.Duration) Option {
	return func(s *Service) {
		s.short = short
		s.medium = medium
	}
}

// WithFixtures sets where CreateAndOpen writes its genesis file and how many nodes it lists.
func WithFixtures(w *genesis.Writer, nodes int) Option {
	return func(s *Service) {
		s.fixtures = w
		s.nodes = nodes
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer("indy.pool")
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(d driver.Driver, opts ...Option) *Service {
	s := &Service{
		driver:  d,
		pending: callback.NewRegistry[chan completion](),
		short:   config.DefaultShortTimeout,
		medium:  config.DefaultMediumTimeout,
		fixtures: &genesis.Writer{
			Dir: filepath.Join(os.TempDir(), config.CmdRoot),
			IP:  config.DefaultPoolIP,
		},
		nodes:  config.DefaultPoolNodes,
		tracer: noop.NewTracerProvider().Tracer("indy.pool"),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics()
	}
	return s
}

// NewServiceFromConfig builds a Service whose timeouts and fixtures follow cp.
func NewServiceFromConfig(d driver.Driver, cp *config.Provider, opts ...Option) (*Service, error) {
	timeouts, err := cp.Timeouts()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithTimeouts(timeouts.Short, timeouts.Medium),
		WithFixtures(&genesis.Writer{Dir: cp.FixturesDir(), IP: cp.PoolIP()}, cp.PoolNodes()),
	}
	return NewService(d, append(base, opts...)...), nil
}

// Fixtures returns the genesis writer used by CreateAndOpen.
func (s *Service) Fixtures() *genesis.Writer {
	return s.fixtures
}

// Pending returns the number of calls still waiting for their completion.
func (s *Service) Pending() int {
	return s.pending.Len()
}

// CreateLedgerConfig registers the pool configuration name.
// An empty poolConfig lets the library pick its default genesis file.
func (s *Service) CreateLedgerConfig(ctx context.Context, name string, poolConfig string) error {
	_, err := s.call(ctx, CreateConfigOp, s.short, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.CreatePoolLedgerConfig(h, name, poolConfig, s.onStatus)
	}, attribute.String("pool.name", name))
	return errors.WithMessagef(err, "failed creating pool ledger config [%s]", name)
}

// Open connects to the pool name and returns its handle.
// An empty openConfig keeps the library defaults.
func (s *Service) Open(ctx context.Context, name string, openConfig string) (driver.PoolHandle, error) {
	res, err := s.call(ctx, OpenOp, s.medium, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.OpenPoolLedger(h, name, openConfig, s.onOpen)
	}, attribute.String("pool.name", name))
	if err != nil {
		return 0, errors.WithMessagef(err, "failed opening pool ledger [%s]", name)
	}
	s.logger.Debugf("pool ledger [%s] opened with handle [%d]", name, res.pool)
	return res.pool, nil
}

// CreateAndOpen writes the test pool genesis file, creates a config pointing
// at it and opens the pool.
func (s *Service) CreateAndOpen(ctx context.Context, name string) (driver.PoolHandle, error) {
	path, err := s.fixtures.WriteTestPool(name, s.nodes, "")
	if err != nil {
		return 0, errors.WithMessagef(err, "failed writing genesis file of pool [%s]", name)
	}
	poolConfig, err := genesis.PoolConfigJSON(path)
	if err != nil {
		return 0, err
	}
	if err := s.CreateLedgerConfig(ctx, name, poolConfig); err != nil {
		return 0, err
	}
	return s.Open(ctx, name, "")
}

func (s *Service) Refresh(ctx context.Context, pool driver.PoolHandle) error {
	_, err := s.call(ctx, RefreshOp, s.short, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.RefreshPoolLedger(h, pool, s.onStatus)
	}, attribute.Int("pool.handle", int(pool)))
	return errors.WithMessagef(err, "failed refreshing pool ledger [%d]", pool)
}

func (s *Service) Close(ctx context.Context, pool driver.PoolHandle) error {
	_, err := s.call(ctx, CloseOp, s.short, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.ClosePoolLedger(h, pool, s.onStatus)
	}, attribute.Int("pool.handle", int(pool)))
	return errors.WithMessagef(err, "failed closing pool ledger [%d]", pool)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	_, err := s.call(ctx, DeleteConfigOp, s.short, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.DeletePoolLedgerConfig(h, name, s.onStatus)
	}, attribute.String("pool.name", name))
	return errors.WithMessagef(err, "failed deleting pool ledger config [%s]", name)
}

// SubmitRequest sends request to the pool and returns the raw reply.
func (s *Service) SubmitRequest(ctx context.Context, pool driver.PoolHandle, request string) (string, error) {
	res, err := s.call(ctx, SubmitOp, s.medium, func(h driver.CommandHandle) driver.ErrorCode {
		return s.driver.SubmitRequest(h, pool, request, s.onSubmit)
	}, attribute.Int("pool.handle", int(pool)))
	if err != nil {
		return "", errors.WithMessagef(err, "failed submitting request to pool ledger [%d]", pool)
	}
	return res.response, nil
}

func (s *Service) call(ctx context.Context, op string, timeout time.Duration, issue func(driver.CommandHandle) driver.ErrorCode, attrs ...attribute.KeyValue) (completion, error) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	res, status, err := s.await(ctx, op, timeout, issue)
	s.metrics.observe(op, status, time.Since(start))

	span.SetAttributes(attribute.String("status", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debugf("%s ended with status [%s]: %s", op, status, err)
		return res, err
	}
	return res, nil
}

func (s *Service) await(ctx context.Context, op string, timeout time.Duration, issue func(driver.CommandHandle) driver.ErrorCode) (completion, string, error) {
	ch := make(chan completion, 1)
	h := s.pending.Register(ch)
	s.logger.Debugf("issuing %s with command handle [%d]", op, h)

	if code := issue(h); code != driver.Success {
		s.pending.Take(h)
		return completion{}, statusRejected, errors.Wrapf(code, "%s rejected", op)
	}

	res, err := callback.Wait(ctx, ch, timeout)
	if err != nil {
		// the completion may still arrive; it is dropped once the handle is gone
		s.pending.Take(h)
		if errors.HasCause(err, callback.ErrTimeout) {
			return completion{}, statusTimeout, errors.WithMessagef(err, "%s with command handle [%d]", op, h)
		}
		return completion{}, statusCanceled, err
	}
	if res.code != driver.Success {
		return res, statusFailed, errors.Wrapf(res.code, "%s failed", op)
	}
	return res, statusSuccess, nil
}

func (s *Service) complete(h driver.CommandHandle, res completion) {
	ch, ok := s.pending.Take(h)
	if !ok {
		s.logger.Warnf("dropping completion [%s] of unknown or abandoned command [%d]", res.code, h)
		return
	}
	ch <- res
}

func (s *Service) onStatus(h driver.CommandHandle, code driver.ErrorCode) {
	s.complete(h, completion{code: code})
}

func (s *Service) onOpen(h driver.CommandHandle, code driver.ErrorCode, pool driver.PoolHandle) {
	s.complete(h, completion{code: code, pool: pool})
}

func (s *Service) onSubmit(h driver.CommandHandle, code driver.ErrorCode, response string) {
	s.complete(h, completion{code: code, response: response})
}
