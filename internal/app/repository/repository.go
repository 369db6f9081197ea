package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"repairportal/internal/app/ds"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.User{},
		&ds.RepairOrder{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewWithDB оборачивает уже открытое соединение (используется в тестах)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}
