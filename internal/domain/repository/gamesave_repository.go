package repository

import (
	"context"
	"errors"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGameSaveNotFound is returned when no save slot exists for (user, game).
var ErrGameSaveNotFound = errors.New("game save not found")

// GameSaveRepository stores per-minigame save slots, keyed by (user id, game
// id). Implementations must treat structurally malformed payloads as absent
// rather than failing the restore.
type GameSaveRepository interface {
	// Put writes a save slot, replacing any prior save for the same key.
	Put(ctx context.Context, save *entity.GameSave) error

	// Get reads the save slot for (userID, gameID).
	Get(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameSave, error)

	// Delete removes the save slot for (userID, gameID). Deleting a missing
	// slot is not an error.
	Delete(ctx context.Context, userID uuid.UUID, gameID string) error
}
