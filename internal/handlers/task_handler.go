package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	task, err := h.taskService.Create(req, principal)
	if err != nil {
		return h.taskError(c, "tasks.create", principal, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TaskEnvelope{Task: *task})
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	tasks, err := h.taskService.List(principal)
	if err != nil {
		return h.taskError(c, "tasks.list", principal, err)
	}

	return c.JSON(dto.TaskListResponse{Tasks: tasks})
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid task id",
		})
	}

	task, err := h.taskService.Get(id, principal)
	if err != nil {
		return h.taskError(c, "tasks.get", principal, err)
	}

	return c.JSON(dto.TaskEnvelope{Task: *task})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid task id",
		})
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	task, err := h.taskService.Update(id, req, principal)
	if err != nil {
		return h.taskError(c, "tasks.update", principal, err)
	}

	return c.JSON(dto.TaskEnvelope{Task: *task})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid task id",
		})
	}

	task, err := h.taskService.Delete(id, principal)
	if err != nil {
		return h.taskError(c, "tasks.delete", principal, err)
	}

	return c.JSON(dto.DeletedTaskResponse{Message: "Task deleted successfully", Task: *task})
}

// taskError maps the service error taxonomy onto status codes:
// validation 400, missing references 404, ownership 403, everything else a
// logged 500 with no internals exposed.
func (h *TaskHandler) taskError(c *fiber.Ctx, action string, principal services.Principal, err error) error {
	switch {
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAssignedUserNotFound), errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrTaskForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("task operation failed", "action", action, "user_id", principal.ID.String(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
