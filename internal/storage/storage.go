package storage

import (
	"context"
	"errors"

	"github.com/avoronov/go-task-api/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not
	// visible to the requesting owner. Callers cannot tell the two
	// cases apart.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on unique constraint violations.
	ErrAlreadyExists = errors.New("already exists")
)

type Storage interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	InsertUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)

	// FindLiveTask returns the live task with the given id owned by
	// ownerID, or ErrNotFound.
	FindLiveTask(ctx context.Context, id, ownerID int64) (*models.Task, error)
	InsertTask(ctx context.Context, description string, ownerID int64, status string) (*models.Task, error)

	// UpdateTaskStatus sets the status of the live task with the given
	// id owned by ownerID and returns the updated row, or ErrNotFound.
	UpdateTaskStatus(ctx context.Context, id, ownerID int64, status string) (*models.Task, error)

	// MoveTaskToArchive atomically copies the live task into the
	// archived set and deletes it from the live set. On any failure
	// the task stays live and no archived copy remains.
	MoveTaskToArchive(ctx context.Context, id, ownerID int64) (*models.ArchivedTask, error)

	ListTasksByOwner(ctx context.Context, ownerID int64, offset, limit uint32) ([]*models.Task, error)
}
