package store

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// CreateTestStore opens a unique in-memory database per call so tests never
// share state.
func CreateTestStore() *Store {
	counter := atomic.AddInt64(&testDBCounter, 1)
	dbName := fmt.Sprintf("file:test_%d.db?mode=memory&cache=shared", counter)

	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	s := New(db)
	if err := s.AutoMigrate(); err != nil {
		panic(err)
	}

	return s
}
