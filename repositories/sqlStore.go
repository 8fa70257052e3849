package repositories

import (
	"gorm.io/gorm"
)

var _ Backend = (*SQLStore)(nil)

// SQLStore is the hosted table-store backend.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}
