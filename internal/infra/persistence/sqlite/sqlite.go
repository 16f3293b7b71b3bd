// Package sqlite backs the durable local key-value snapshot slot with an
// embedded sqlite file through GORM. There is no database server: the slot
// is trivial snapshot storage, one row per storage key.
package sqlite

import (
	"context"
	"time"

	"tycoon/config"
	"tycoon/internal/errors"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// SnapshotModel is the GORM model for one persisted snapshot row.
type SnapshotModel struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

// TableName maps the model onto the snapshots table.
func (SnapshotModel) TableName() string {
	return "snapshots"
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the embedded sqlite database and migrates the snapshot table.
func New(params Params) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(params.Config.Persistence.Path), &gorm.Config{
		// One writer, short statements: the implicit per-statement
		// transaction buys nothing here.
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := db.AutoMigrate(&SnapshotModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate snapshot table")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
