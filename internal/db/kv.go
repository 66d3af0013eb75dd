package db

import (
	"context"
	"errors"
	"time"

	"gameforum/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one key of the forum's key-value document store.
type Entry struct {
	Name      string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	Version   int64     `gorm:"not null;default:1"` // bumped on every write, last writer wins
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// KV implements storage.KV on top of a gorm connection.
type KV struct {
	db *gorm.DB
}

func NewKV(db *gorm.DB) *KV {
	return &KV{db: db}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	e := Entry{Name: key, Value: value, Version: 1, UpdatedAt: now}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"version":    gorm.Expr("kv_entries.version + 1"),
			"updated_at": now,
		}),
	}).Create(&e).Error
}

func (s *KV) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("name = ?", key).Delete(&Entry{}).Error
}

// Version returns how many times key has been written since it was created.
func (s *KV) Version(ctx context.Context, key string) (int64, error) {
	var e Entry
	err := s.db.WithContext(ctx).Select("version").Where("name = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, storage.ErrNotFound
	}
	return e.Version, err
}
