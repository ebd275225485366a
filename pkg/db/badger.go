package db

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

func UseBadgerPath() string {
	if path, found := os.LookupEnv(common.EnvKeyBadgerPath); found && path != "" {
		return path
	}
	return "data/badger"
}

// OpenBadger opens a badger database at path, or an in-memory one when path
// is empty.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return bdb, nil
}
