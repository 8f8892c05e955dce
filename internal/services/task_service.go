package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidStatus        = errors.New("invalid status. allowed values: to-do, in progress, blocked, done")
	ErrAssignedUserNotFound = errors.New("assigned user not found")
	ErrTaskForbidden        = errors.New("not allowed to access this task")
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// canAccess is the ownership rule for Get/Update/Delete, always evaluated
// against the task's current assignment: admins may touch everything,
// everyone else only tasks explicitly assigned to them. An authenticated
// but unauthorized actor gets Forbidden rather than NotFound, so existence
// is not hidden but content and mutation are.
func canAccess(task *models.Task, actor Principal) bool {
	if actor.IsAdmin() {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == actor.ID
}

// Create builds a new task. Any authenticated actor may create a task for
// any existing assignee.
func (s *TaskService) Create(req dto.CreateTaskRequest, actor Principal) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := models.StatusToDo
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status = normalized
	}

	if req.AssignedTo != nil {
		exists, err := s.userExists(*req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrAssignedUserNotFound
		}
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	models.ApplyStatusTransition(&task, status, actor.ID, time.Now().UTC())

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.joined(&task)
}

// List returns every task for admins and only the actor's assigned tasks
// otherwise, each joined with its assignee summary.
func (s *TaskService) List(actor Principal) ([]dto.TaskResponse, error) {
	query := s.db.Order("created_at DESC")
	if !actor.IsAdmin() {
		query = query.Where("assigned_to = ?", actor.ID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	for i := range tasks {
		if tasks[i].AssignedTo != nil {
			ids = append(ids, *tasks[i].AssignedTo)
		}
	}
	users, err := s.usersByID(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		var assignee *models.User
		if tasks[i].AssignedTo != nil {
			assignee = users[*tasks[i].AssignedTo]
		}
		responses = append(responses, dto.NewTaskResponse(&tasks[i], assignee, nil))
	}
	return responses, nil
}

func (s *TaskService) Get(id uuid.UUID, actor Principal) (*dto.TaskResponse, error) {
	task, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !canAccess(task, actor) {
		return nil, ErrTaskForbidden
	}
	return s.joined(task)
}

// Update applies a partial patch. Omitted fields stay unchanged and
// empty-string title/description count as omitted. The done-transition is
// written as a conditional update so the first completer keeps the credit
// even under concurrent updates to the same task.
func (s *TaskService) Update(id uuid.UUID, req dto.UpdateTaskRequest, actor Principal) (*dto.TaskResponse, error) {
	task, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !canAccess(task, actor) {
		return nil, ErrTaskForbidden
	}

	updates := map[string]interface{}{}

	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if req.AssignedTo.Set {
		if req.AssignedTo.Value == nil {
			updates["assigned_to"] = nil
		} else {
			exists, err := s.userExists(*req.AssignedTo.Value)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, ErrAssignedUserNotFound
			}
			updates["assigned_to"] = *req.AssignedTo.Value
		}
	}

	if req.Status != "" {
		status, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		updates["status"] = status
		if status == models.StatusDone {
			now := time.Now().UTC()
			updates["finished_at"] = gorm.Expr("COALESCE(finished_at, ?)", now)
			updates["finished_by"] = gorm.Expr("COALESCE(finished_by, ?)", actor.ID)
		} else {
			updates["finished_at"] = nil
			updates["finished_by"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	task, err = s.find(id)
	if err != nil {
		return nil, err
	}
	return s.joined(task)
}

// Delete removes the task permanently and returns its last known
// representation.
func (s *TaskService) Delete(id uuid.UUID, actor Principal) (*dto.TaskResponse, error) {
	task, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !canAccess(task, actor) {
		return nil, ErrTaskForbidden
	}

	resp, err := s.joined(task)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&models.Task{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return resp, nil
}

func (s *TaskService) find(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) userExists(id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check assigned user: %w", err)
	}
	return count > 0, nil
}

// joined resolves the assignee and finisher references into identity
// summaries with a single lookup.
func (s *TaskService) joined(task *models.Task) (*dto.TaskResponse, error) {
	ids := make([]uuid.UUID, 0, 2)
	if task.AssignedTo != nil {
		ids = append(ids, *task.AssignedTo)
	}
	if task.FinishedBy != nil {
		ids = append(ids, *task.FinishedBy)
	}
	users, err := s.usersByID(ids)
	if err != nil {
		return nil, err
	}

	var assignee, finisher *models.User
	if task.AssignedTo != nil {
		assignee = users[*task.AssignedTo]
	}
	if task.FinishedBy != nil {
		finisher = users[*task.FinishedBy]
	}

	resp := dto.NewTaskResponse(task, assignee, finisher)
	return &resp, nil
}

func (s *TaskService) usersByID(ids []uuid.UUID) (map[uuid.UUID]*models.User, error) {
	byID := make(map[uuid.UUID]*models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}
