package services

import (
	"context"

	"github.com/avoronov/go-task-api/internal/models"
	"github.com/avoronov/go-task-api/internal/storage"
)

// fakeStorage is an in-memory Storage with the same visible semantics
// as the postgres implementation: owner-scoped lookups, unique
// usernames and emails, and a task id sequence that is never reused.
type fakeStorage struct {
	users      map[int64]*models.User
	tasks      map[int64]*models.Task
	archived   map[int64]*models.ArchivedTask
	nextUserID int64
	nextTaskID int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:    make(map[int64]*models.User),
		tasks:    make(map[int64]*models.Task),
		archived: make(map[int64]*models.ArchivedTask),
	}
}

func (f *fakeStorage) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (f *fakeStorage) InsertUser(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return nil, storage.ErrAlreadyExists
		}
	}

	f.nextUserID++
	user := &models.User{
		ID:           f.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	f.users[user.ID] = user

	u := *user
	return &u, nil
}

func (f *fakeStorage) deleteUser(id int64) {
	delete(f.users, id)
}

func (f *fakeStorage) FindLiveTask(_ context.Context, id, ownerID int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, storage.ErrNotFound
	}
	t := *task
	return &t, nil
}

func (f *fakeStorage) InsertTask(_ context.Context, description string, ownerID int64, status string) (*models.Task, error) {
	f.nextTaskID++
	task := &models.Task{
		ID:          f.nextTaskID,
		UserID:      ownerID,
		Description: description,
		Status:      status,
	}
	f.tasks[task.ID] = task

	t := *task
	return &t, nil
}

func (f *fakeStorage) UpdateTaskStatus(_ context.Context, id, ownerID int64, status string) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, storage.ErrNotFound
	}
	task.Status = status

	t := *task
	return &t, nil
}

func (f *fakeStorage) MoveTaskToArchive(_ context.Context, id, ownerID int64) (*models.ArchivedTask, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, storage.ErrNotFound
	}

	archived := &models.ArchivedTask{
		ID:          task.ID,
		UserID:      task.UserID,
		Description: task.Description,
		Status:      task.Status,
	}
	f.archived[archived.ID] = archived
	delete(f.tasks, id)

	a := *archived
	return &a, nil
}

func (f *fakeStorage) ListTasksByOwner(_ context.Context, ownerID int64, offset, limit uint32) ([]*models.Task, error) {
	owned := make([]*models.Task, 0)
	for id := int64(1); id <= f.nextTaskID; id++ {
		task, ok := f.tasks[id]
		if !ok || task.UserID != ownerID {
			continue
		}
		t := *task
		owned = append(owned, &t)
	}

	if int(offset) >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if int(limit) < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}
