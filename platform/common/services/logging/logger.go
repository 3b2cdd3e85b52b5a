/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"io"
	"testing"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/flogging/floggingtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides logging API
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	IsEnabledFor(level zapcore.Level) bool
	Named(name string) Logger
	With(args ...interface{}) Logger
	Zap() *zap.Logger
}

type Config struct {
	// Format is the log record format specifier. If the spec is the string "json",
	// log records will be formatted as JSON.
	Format string
	// LogSpec determines the log levels that are enabled, for example
	// "indy.pool=debug:info". Defaults to INFO.
	LogSpec string
	// Writer is the sink for encoded and formatted log records, os.Stderr if nil.
	Writer io.Writer
}

// Init (re)configures the global logging system.
func Init(c Config) {
	flogging.Init(flogging.Config{
		Format:  c.Format,
		LogSpec: c.LogSpec,
		Writer:  c.Writer,
	})
}

type Recorder = floggingtest.Recorder

type Option = floggingtest.Option

func Named(loggerName string) Option {
	return func(r *floggingtest.RecordingCore, l *zap.Logger) *zap.Logger {
		return l.Named(loggerName)
	}
}

func MustGetLogger(loggerName string) Logger {
	return &logger{FabricLogger: flogging.MustGetLogger(loggerName)}
}

// NewTestLogger returns a logger whose entries are captured by the returned Recorder.
func NewTestLogger(tb testing.TB, options ...Option) (Logger, *Recorder) {
	l, r := floggingtest.NewTestLogger(tb, options...)
	return &logger{FabricLogger: l}, r
}

type logger struct {
	*flogging.FabricLogger
}

func (l *logger) Named(name string) Logger {
	return &logger{FabricLogger: l.FabricLogger.Named(name)}
}

func (l *logger) With(args ...interface{}) Logger {
	return &logger{FabricLogger: l.FabricLogger.With(args...)}
}
