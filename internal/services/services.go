package services

import (
	"context"
	"errors"
	"time"

	"github.com/avoronov/go-task-api/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
)

type AuthService interface {
	// Login authenticates the user by username and password and
	// issues a bearer token with the default TTL.
	//
	// It returns ErrInvalidCredentials whether the user doesn't
	// exist or the password doesn't match. The two failures are
	// deliberately indistinguishable.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Register creates a user with the given username, email and
	// hashed password.
	//
	// It returns ErrUserAlreadyExists if the username
	// or email is already taken.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Resolve decodes the given bearer token and returns the user it
	// was issued to.
	//
	// It returns ErrUnauthenticated on any decode failure or when
	// the subject no longer resolves to a stored user.
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type TaskService interface {
	// CreateTask inserts a new live task with the default status.
	CreateTask(ctx context.Context, ownerID int64, description string) (*models.Task, error)

	// GetTask returns the live task with the given id owned by ownerID.
	//
	// It returns ErrTaskNotFound if the task doesn't exist or is
	// owned by someone else.
	GetTask(ctx context.Context, id, ownerID int64) (*models.Task, error)

	// ListTasks returns an offset/limit window of the owner's live
	// tasks in insertion order. A zero limit falls back to a default.
	ListTasks(ctx context.Context, ownerID int64, offset, limit uint32) ([]*models.Task, error)

	// UpdateTaskStatus sets the task's status.
	//
	// It returns ErrInvalidTaskStatus if the status is not a known
	// code, or ErrTaskNotFound as in GetTask. The stored status is
	// untouched on failure.
	UpdateTaskStatus(ctx context.Context, id, ownerID int64, status string) (*models.Task, error)

	// ArchiveTask atomically moves the task into the archived set,
	// preserving its id and final status.
	//
	// It returns ErrTaskNotFound as in GetTask.
	ArchiveTask(ctx context.Context, id, ownerID int64) (*models.ArchivedTask, error)

	// StatusValues returns the status code to label mapping.
	StatusValues() map[string]string
}

type LoginParams struct {
	Username string
	Password string
}

type LoginResult struct {
	UserID               int64
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}
