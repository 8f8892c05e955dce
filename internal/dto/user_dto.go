package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/google/uuid"
)

// UserResponse is the public view of an account. It never carries the
// password hash or reset-token state.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserSummary is the identity slice joined into task responses.
type UserSummary struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ProfileResponse is the caller's own account plus the IDs of tasks
// currently assigned to them.
type ProfileResponse struct {
	User    UserResponse `json:"user"`
	TaskIDs []uuid.UUID  `json:"task_ids"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type DeletedUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
