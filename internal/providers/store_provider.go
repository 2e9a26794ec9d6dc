package providers

import (
	"mindbloom/internal/store"
	"mindbloom/internal/structures"
)

// NewStoreProvider hands out the process-wide store client. The
// managed backend is reached through the same interface; local mode
// runs on the in-memory implementation.
func NewStoreProvider(conf *structures.Config, logger Logger) store.Store {
	logger.Infof(TypeApp, "Using in-memory document store (%s)", conf.AppName)
	return store.NewMemory()
}
