// Package blob stores per-minigame save slots as JSON documents in a local
// file bucket, one object per (user id, game id).
package blob

import (
	"context"
	"encoding/json"
	"log/slog"

	"tycoon/config"
	"tycoon/internal/domain/entity"
	"tycoon/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// gameSaveRepository implements the repository.GameSaveRepository interface.
type gameSaveRepository struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewGameSaveRepository opens a file bucket under the configured save
// directory and returns the repository over it.
func NewGameSaveRepository(params Params) (repository.GameSaveRepository, error) {
	bucket, err := fileblob.OpenBucket(params.Config.Persistence.SaveDir, &fileblob.Options{
		CreateDir: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open save bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &gameSaveRepository{bucket: bucket, logger: params.Logger}, nil
}

func saveObjectKey(userID uuid.UUID, gameID string) string {
	return userID.String() + "/" + gameID + ".json"
}

// Put writes a save slot, replacing any prior save for the same key.
func (repo *gameSaveRepository) Put(ctx context.Context, save *entity.GameSave) error {
	payload, err := json.Marshal(save)
	if err != nil {
		return errors.Wrap(err, "failed to marshal game save")
	}

	key := saveObjectKey(save.UserID, save.GameID)
	if err := repo.bucket.WriteAll(ctx, key, payload, nil); err != nil {
		return errors.Wrap(err, "failed to write game save")
	}

	return nil
}

// Get reads the save slot for (userID, gameID). A structurally malformed
// payload is treated as absent: the caller re-initializes a fresh save
// instead of crashing on corrupted local data.
func (repo *gameSaveRepository) Get(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameSave, error) {
	key := saveObjectKey(userID, gameID)

	payload, err := repo.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrGameSaveNotFound
		}

		return nil, errors.Wrap(err, "failed to read game save")
	}

	var save entity.GameSave
	if err := json.Unmarshal(payload, &save); err != nil {
		repo.logger.Warn("discarding malformed game save",
			slog.String("key", key),
			slog.String("error", err.Error()))

		return nil, repository.ErrGameSaveNotFound
	}

	if save.Sanitize() {
		repo.logger.Warn("repaired corrupted game save fields", slog.String("key", key))
	}

	return &save, nil
}

// Delete removes the save slot for (userID, gameID).
func (repo *gameSaveRepository) Delete(ctx context.Context, userID uuid.UUID, gameID string) error {
	key := saveObjectKey(userID, gameID)

	if err := repo.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete game save")
	}

	return nil
}
