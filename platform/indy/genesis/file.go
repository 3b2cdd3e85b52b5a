/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
	"github.com/greencultureai/indy-sdk/platform/common/services/logging"
)

var logger = logging.MustGetLogger("indy.genesis")

// PoolConfig is the pool configuration understood by the ledger client library.
// The genesis file it points at must exist when the config is used.
type PoolConfig struct {
	GenesisTxn string `json:"genesis_txn"`
}

// PoolConfigJSON returns the pool configuration for the genesis file at path.
func PoolConfigJSON(path string) (string, error) {
	raw, err := json.Marshal(&PoolConfig{GenesisTxn: path})
	if err != nil {
		return "", errors.Wrapf(err, "failed marshalling pool config")
	}
	return string(raw), nil
}

// WriteFile writes data at path, creating missing parent directories,
// and syncs the file to disk.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed creating directory for [%s]", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed creating [%s]", path)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "failed writing [%s]", path)
	}
	if err := f.Sync(); err != nil {
		return errors.Wrapf(err, "failed syncing [%s]", path)
	}
	return f.Close()
}

// ReadFile decodes the genesis file at path.
func ReadFile(path string) ([]NodeTxn, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening genesis file [%s]", path)
	}
	defer f.Close()
	return Decode(f)
}

// Writer produces genesis files for test pools.
type Writer struct {
	// Dir holds genesis files written without an explicit path
	Dir string
	// IP is the address every test node is reachable at
	IP string
}

// Path returns the default genesis file location of pool.
func (w *Writer) Path(pool string) string {
	return filepath.Join(w.Dir, pool+".txn")
}

// Write stores data as the genesis file of pool. An empty path selects Path(pool).
func (w *Writer) Write(pool string, data []byte, path string) (string, error) {
	if len(path) == 0 {
		path = w.Path(pool)
	}
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	logger.Debugf("genesis file of pool [%s] written at [%s]", pool, path)
	return path, nil
}

// WriteTestPool writes the genesis file of a test pool made of count validators.
func (w *Writer) WriteTestPool(pool string, count int, path string) (string, error) {
	txns, err := TestPool(w.IP, count)
	if err != nil {
		return "", err
	}
	return w.write(pool, txns, path)
}

// WriteInvalidNodes writes a genesis file whose nodes lack aliases.
func (w *Writer) WriteInvalidNodes(pool string, path string) (string, error) {
	return w.write(pool, InvalidNodes(w.IP), path)
}

// WriteWrongAlias writes a genesis file whose last node carries an unknown alias.
func (w *Writer) WriteWrongAlias(pool string, path string) (string, error) {
	return w.write(pool, WrongAliasNodes(w.IP), path)
}

func (w *Writer) write(pool string, txns []NodeTxn, path string) (string, error) {
	data, err := Encode(txns)
	if err != nil {
		return "", err
	}
	return w.Write(pool, data, path)
}
