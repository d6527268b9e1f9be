package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/avoronov/go-task-api/internal/models"
	"github.com/avoronov/go-task-api/internal/storage"
)

const defaultListLimit = 100

type taskServiceImpl struct {
	logger zerolog.Logger
	store  storage.Storage
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Storage,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, ownerID int64, description string) (*models.Task, error) {
	task, err := s.store.InsertTask(ctx, description, ownerID, models.DefaultStatus)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", ownerID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	task, err := s.store.FindLiveTask(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", id).
				Int64("user_id", ownerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, ownerID int64, offset, limit uint32) ([]*models.Task, error) {
	if limit == 0 {
		limit = defaultListLimit
	}

	tasks, err := s.store.ListTasksByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", ownerID).
			Msg("failed to select tasks by owner")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Int64("user_id", ownerID).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id, ownerID int64, status string) (*models.Task, error) {
	if !models.ValidStatus(status) {
		s.logger.Info().
			Str("status", status).
			Msg("unknown task status")
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.store.UpdateTaskStatus(ctx, id, ownerID, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", id).
				Int64("user_id", ownerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) ArchiveTask(ctx context.Context, id, ownerID int64) (*models.ArchivedTask, error) {
	archived, err := s.store.MoveTaskToArchive(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().
				Int64("task_id", id).
				Int64("user_id", ownerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to archive task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", archived.ID).
		Int64("user_id", ownerID).
		Msg("archived task")
	return archived, nil
}

func (s *taskServiceImpl) StatusValues() map[string]string {
	return models.StatusLabels()
}
