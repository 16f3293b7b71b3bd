package sqlite

import (
	"context"

	"tycoon/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRepository implements the repository.SnapshotRepository interface.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository is the constructor for snapshotRepository.
func NewSnapshotRepository(db *gorm.DB) repository.SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

// Save upserts the payload under the storage key.
func (repo *snapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	row := SnapshotModel{Key: key, Payload: payload}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return errors.Wrap(err, "failed to save snapshot")
	}

	return nil
}

// Load reads the payload stored under the storage key.
func (repo *snapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var row SnapshotModel

	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSnapshotNotFound
		}

		return nil, errors.Wrap(err, "failed to load snapshot")
	}

	return row.Payload, nil
}
