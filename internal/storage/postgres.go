package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/avoronov/go-task-api/internal/models"
)

type postgresStorage struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresStorage(logger zerolog.Logger, pgPool *pgxpool.Pool) Storage {
	return &postgresStorage{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *postgresStorage) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const selectUserByUsernameQuery = `
SELECT id,
       username,
       email,
       password_hash
FROM users
WHERE username = $1
`
	user := new(models.User)
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by username")
		return nil, fmt.Errorf("failed to select user by username: %w", err)
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("selected user by username")

	return user, nil
}

func (s *postgresStorage) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT id,
       username,
       email,
       password_hash
FROM users
WHERE id = $1
`
	user := new(models.User)
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		id,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to select user by id")
		return nil, fmt.Errorf("failed to select user by id: %w", err)
	}

	return user, nil
}

func (s *postgresStorage) InsertUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	const insertUserQuery = `
INSERT INTO users (username,
                   email,
                   password_hash)
VALUES ($1, $2, $3)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("inserted user")

	return user, nil
}

func (s *postgresStorage) FindLiveTask(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	const selectTaskQuery = `
SELECT id,
       user_id,
       description,
       status
FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	task := new(models.Task)
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		id,
		ownerID,
	).Scan(
		&task.ID,
		&task.UserID,
		&task.Description,
		&task.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, fmt.Errorf("failed to select task: %w", err)
	}

	return task, nil
}

func (s *postgresStorage) InsertTask(ctx context.Context, description string, ownerID int64, status string) (*models.Task, error) {
	task := &models.Task{
		UserID:      ownerID,
		Description: description,
		Status:      status,
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   description,
                   status)
VALUES ($1, $2, $3)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Description,
		task.Status,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	return task, nil
}

func (s *postgresStorage) UpdateTaskStatus(ctx context.Context, id, ownerID int64, status string) (*models.Task, error) {
	task := &models.Task{
		ID:     id,
		UserID: ownerID,
		Status: status,
	}

	const updateTaskStatusQuery = `
UPDATE tasks
SET status = $1
WHERE id = $2 AND
      user_id = $3
RETURNING description
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskStatusQuery,
		task.Status,
		task.ID,
		task.UserID,
	).Scan(&task.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task status")
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")

	return task, nil
}

func (s *postgresStorage) MoveTaskToArchive(ctx context.Context, id, ownerID int64) (*models.ArchivedTask, error) {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The insert and delete share one transaction, so a failure
	// partway leaves the task live and not duplicated.
	const archiveTaskQuery = `
INSERT INTO archived_tasks (id,
                            user_id,
                            description,
                            status)
SELECT id,
       user_id,
       description,
       status
FROM tasks
WHERE id = $1 AND
      user_id = $2
RETURNING id, user_id, description, status
`
	archived := new(models.ArchivedTask)
	err = tx.QueryRow(
		ctx,
		archiveTaskQuery,
		id,
		ownerID,
	).Scan(
		&archived.ID,
		&archived.UserID,
		&archived.Description,
		&archived.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to insert archived task")
		return nil, fmt.Errorf("failed to insert archived task: %w", err)
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	tag, err := tx.Exec(
		ctx,
		deleteTaskQuery,
		id,
		ownerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.logger.Debug().
		Int64("task_id", archived.ID).
		Msg("archived task")

	return archived, nil
}

func (s *postgresStorage) ListTasksByOwner(ctx context.Context, ownerID int64, offset, limit uint32) ([]*models.Task, error) {
	const selectTasksByOwnerQuery = `
SELECT id,
       description,
       status
FROM tasks
WHERE user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByOwnerQuery,
		ownerID,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by owner")
		return nil, fmt.Errorf("failed to select tasks by owner: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		task := &models.Task{UserID: ownerID}
		err = rows.Scan(
			&task.ID,
			&task.Description,
			&task.Status,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("user_id", ownerID).
		Msg("selected tasks by owner")

	return tasks, nil
}
