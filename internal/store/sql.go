package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaeltorres/rocketcart-backend/pkg/db"
	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshot is the single key/value row backing a session's cart.
type CartSnapshot struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the snapshot table name.
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

// SQL stores cart snapshots in a relational table, one row per session.
type SQL struct {
	client    *db.Client
	namespace string
}

// NewSQL wires the SQL-backed durable store and migrates its table.
func NewSQL(client *db.Client, namespace string) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if err := client.DB().AutoMigrate(&CartSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrating cart snapshots: %w", err)
	}
	return &SQL{client: client, namespace: namespace}, nil
}

func (s *SQL) Read(ctx context.Context, key string) (string, bool, error) {
	var row CartSnapshot
	err := s.client.DB().WithContext(ctx).First(&row, "key = ?", s.storageKey(key)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart snapshot")
	}
	return row.Value, true, nil
}

func (s *SQL) Write(ctx context.Context, key, value string) error {
	row := CartSnapshot{
		Key:       s.storageKey(key),
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart snapshot")
	}
	return nil
}

func (s *SQL) storageKey(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
