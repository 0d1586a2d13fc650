package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taskmgr/internal/codec"
	"taskmgr/internal/config"
	"taskmgr/internal/service"
	"taskmgr/internal/store"
)

// FileStore is the production ServiceFactory. It decodes the task file
// and returns a Store that writes every change back to it.
func FileStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("%w: cannot create data directory: %v", service.ErrIO, err)
	}

	file := codec.NewFile(cfg.DataPath(), cfg.Limits(), logger)
	state, report := file.Load()
	logger.WithFields(log.Fields{
		"path":    file.Path,
		"next_id": state.NextID,
	}).Debug("store ready")
	if report.Corrupt != nil {
		logger.WithField("path", file.Path).Warn("task file was truncated at the first corrupt record; the next save rewrites it")
	}

	return store.New(state, cfg.Limits(), file), nil
}
