/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
	"github.com/spf13/viper"
)

const (
	CmdRoot = "indy"
	// CfgPathEnv overrides the directories searched for indy.yaml
	CfgPathEnv = "INDY_CFG_PATH"
	// TestPoolIPEnv is the address of the local test pool
	TestPoolIPEnv = "TEST_POOL_IP"
)

const (
	DriverKey        = "driver"
	HomeKey          = "home"
	FixturesDirKey   = "fixtures.dir"
	PoolIPKey        = "pool.ip"
	PoolNodesKey     = "pool.nodes"
	ShortTimeoutKey  = "timeouts.short"
	MediumTimeoutKey = "timeouts.medium"
	LongTimeoutKey   = "timeouts.long"
)

const (
	DefaultDriver        = "sim"
	DefaultPoolIP        = "127.0.0.1"
	DefaultPoolNodes     = 4
	DefaultShortTimeout  = 5 * time.Second
	DefaultMediumTimeout = 10 * time.Second
	DefaultLongTimeout   = 100 * time.Second
)

var logOutput = os.Stderr

// Timeouts are the completion waits applied to library calls.
type Timeouts struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

type Provider struct {
	confPath string
	Backend  *viper.Viper
}

// NewProvider loads indy.yaml from confPath, or from INDY_CFG_PATH, the working
// directory and the user config directory when confPath is empty.
// A missing file is not an error when no path was requested explicitly.
func NewProvider(confPath string) (*Provider, error) {
	p := &Provider{confPath: confPath}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewDefaultProvider returns a provider carrying defaults and environment overrides only.
func NewDefaultProvider() *Provider {
	p := &Provider{Backend: viper.New()}
	p.initDefaults()
	return p
}

func (p *Provider) load() error {
	p.Backend = viper.New()
	p.initDefaults()

	explicit := len(p.confPath) != 0
	if explicit {
		p.Backend.AddConfigPath(p.confPath)
	}
	if altPath := os.Getenv(CfgPathEnv); len(altPath) != 0 {
		if !dirExists(altPath) {
			return errors.Errorf("%s %s does not exist", CfgPathEnv, altPath)
		}
		explicit = true
		p.Backend.AddConfigPath(altPath)
	}
	if !explicit {
		p.Backend.AddConfigPath("./")
		if dir, err := os.UserConfigDir(); err == nil {
			p.Backend.AddConfigPath(filepath.Join(dir, CmdRoot))
		}
	}
	p.Backend.SetConfigName(CmdRoot)

	if err := p.Backend.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || explicit {
			return errors.WithMessagef(err, "error when reading %s config file", CmdRoot)
		}
	}

	logging.Init(logging.Config{
		Format:  p.Backend.GetString("logging.format"),
		LogSpec: p.Backend.GetString("logging.spec"),
		Writer:  logOutput,
	})
	return nil
}

func (p *Provider) initDefaults() {
	v := p.Backend
	v.SetEnvPrefix(CmdRoot)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the test pool address keeps the variable name used by the pool test suites
	_ = v.BindEnv(PoolIPKey, "INDY_POOL_IP", TestPoolIPEnv)

	tmp := filepath.Join(os.TempDir(), CmdRoot)
	v.SetDefault("logging.spec", "info")
	v.SetDefault("logging.format", "")
	v.SetDefault(DriverKey, DefaultDriver)
	v.SetDefault(HomeKey, filepath.Join(tmp, "home"))
	v.SetDefault(FixturesDirKey, tmp)
	v.SetDefault(PoolIPKey, DefaultPoolIP)
	v.SetDefault(PoolNodesKey, DefaultPoolNodes)
	v.SetDefault(ShortTimeoutKey, DefaultShortTimeout)
	v.SetDefault(MediumTimeoutKey, DefaultMediumTimeout)
	v.SetDefault(LongTimeoutKey, DefaultLongTimeout)
}

func (p *Provider) GetString(key string) string {
	return p.Backend.GetString(key)
}

func (p *Provider) GetInt(key string) int {
	return p.Backend.GetInt(key)
}

func (p *Provider) GetDuration(key string) time.Duration {
	return p.Backend.GetDuration(key)
}

func (p *Provider) IsSet(key string) bool {
	return p.Backend.IsSet(key)
}

func (p *Provider) ConfigFileUsed() string {
	return p.Backend.ConfigFileUsed()
}

// GetPath returns the path stored at key, relative paths resolved against the config file directory.
func (p *Provider) GetPath(key string) string {
	path := p.Backend.GetString(key)
	if path == "" {
		return ""
	}
	if used := p.Backend.ConfigFileUsed(); len(used) != 0 {
		return TranslatePath(filepath.Dir(used), path)
	}
	return path
}

// Driver returns the name of the library driver to use
func (p *Provider) Driver() string {
	return p.GetString(DriverKey)
}

// Home is where the simulated library keeps its pool configurations
func (p *Provider) Home() string {
	return p.GetPath(HomeKey)
}

// FixturesDir is where genesis files are written by default
func (p *Provider) FixturesDir() string {
	return p.GetPath(FixturesDirKey)
}

// TmpFilePath returns the location of a fixture file named name.
func (p *Provider) TmpFilePath(name string) string {
	return filepath.Join(p.FixturesDir(), name)
}

func (p *Provider) PoolIP() string {
	return p.GetString(PoolIPKey)
}

func (p *Provider) PoolNodes() int {
	return p.GetInt(PoolNodesKey)
}

func (p *Provider) Timeouts() (Timeouts, error) {
	t := Timeouts{
		Short:  p.GetDuration(ShortTimeoutKey),
		Medium: p.GetDuration(MediumTimeoutKey),
		Long:   p.GetDuration(LongTimeoutKey),
	}
	if t.Short <= 0 || t.Medium <= 0 || t.Long <= 0 {
		return t, errors.Errorf("timeouts must be positive, got %s", t)
	}
	return t, nil
}

func (t Timeouts) String() string {
	return fmt.Sprintf("[short=%s medium=%s long=%s]", t.Short, t.Medium, t.Long)
}

func TranslatePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}
