package main

import (
	"github.com/sells-group/rollcall-cli/internal/store"
)

func initStore() (store.Store, error) {
	path := cfg.Store.Path
	if path == "" {
		path = "rollcall.db"
	}
	return store.NewSQLite(path)
}
