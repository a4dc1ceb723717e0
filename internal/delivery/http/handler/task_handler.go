package handler

import (
	"errors"
	"strings"
	"time"

	"contaflow/internal/delivery/http/dto"
	"contaflow/internal/delivery/http/middleware"
	"contaflow/internal/pkg/response"
	"contaflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TaskHandler struct {
	uc usecase.TaskUsecase
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TaskType    string  `json:"task_type"`
	DueDate     string  `json:"due_date"`
	ClientID    *string `json:"client_id"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func NewTaskHandler(uc usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

func (h *TaskHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Put("/:id/status", h.SetStatus)
	r.Delete("/:id", h.Delete)
}

func (h *TaskHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params := usecase.TaskListParams{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Today:  localToday(c),
		Limit:  fiber.Query[int](c, "limit"),
		Offset: fiber.Query[int](c, "offset"),
	}

	if raw := strings.TrimSpace(c.Query("client_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		params.ClientID = &id
	}

	items, err := h.uc.List(c.Context(), userID, params)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskListResponse(items, params.Today))
}

func (h *TaskHandler) Get(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(item, localToday(c)))
}

func (h *TaskHandler) Create(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req taskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := taskInputFromRequest(req)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewTaskResponse(created, localToday(c)))
}

func (h *TaskHandler) Update(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req taskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := taskInputFromRequest(req)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(updated, localToday(c)))
}

func (h *TaskHandler) SetStatus(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req taskStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.SetStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTaskResponse(updated, localToday(c)))
}

func (h *TaskHandler) Delete(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapTaskUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func taskInputFromRequest(req taskRequest) (usecase.TaskInput, error) {
	in := usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.TaskType,
	}

	due, err := time.Parse("2006-01-02", strings.TrimSpace(req.DueDate))
	if err != nil {
		return usecase.TaskInput{}, err
	}
	in.DueDate = due

	if req.ClientID != nil && strings.TrimSpace(*req.ClientID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.ClientID))
		if err != nil {
			return usecase.TaskInput{}, err
		}
		in.ClientID = &id
	}

	return in, nil
}

func mapTaskUsecaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Task not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
