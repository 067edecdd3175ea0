// Command admin runs the administrative tasks of the site: migrations,
// accounts, groups and demo data.
package main

import (
	"fmt"
	"os"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"

	"gorm.io/gorm"
)

func main() {
	var db *gorm.DB
	open := func(applySchema bool) (*gorm.DB, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		// Deletions invalidate cached groups and users when Redis is reachable.
		cache.InitRedis(cfg.RedisURL)

		if applySchema {
			db, err = database.Connect(cfg)
		} else {
			db, err = database.Open(cfg)
		}
		return db, err
	}

	err := newRootCmd(open).Execute()

	if db != nil {
		if sqlDB, cerr := db.DB(); cerr == nil {
			_ = sqlDB.Close()
		}
	}
	if c := cache.GetClient(); c != nil {
		_ = c.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
