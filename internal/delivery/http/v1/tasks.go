package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/go-task-api/internal/models"
	"github.com/avoronov/go-task-api/internal/services"
)

type taskResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status,
	}
}

func newArchivedTaskResponse(task *models.ArchivedTask) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status,
	}
}

type createTaskRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Info().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, userID, req.Description)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}

	task, err := h.tasks.GetTask(c, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to get task")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	offset, err := parseUintQuery(c, "offset")
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}
	limit, err := parseUintQuery(c, "limit")
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks, err := h.tasks.ListTasks(c, userID, offset, limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

type setTaskStatusRequest struct {
	Status string `json:"status" binding:"required,max=15"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}

	var req setTaskStatusRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Info().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, taskID, userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update task status")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleArchiveTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}

	archived, err := h.tasks.ArchiveTask(c, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to archive task")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newArchivedTaskResponse(archived))
}

func (h *handlerImpl) HandleGetTaskStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.StatusValues())
}

func parseTaskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid task id")
	}
	return id, nil
}

func parseUintQuery(c *gin.Context, name string) (uint32, error) {
	value := c.Query(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint32(n), nil
}
