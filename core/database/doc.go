// Package database opens the SQL connection behind the remote document store.
//
// It wraps GORM and selects the dialect from configuration: MySQL for
// deployments, SQLite for local runs and tests.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
