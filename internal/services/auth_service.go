package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminSelfDelete    = errors.New("admin cannot delete their own account")
	ErrNotAccountOwner    = errors.New("you can only delete your own account")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *TokenService) *AuthService {
	return &AuthService{db: db, cfg: cfg, tokens: tokens}
}

// Register creates an account. The role is always "user"; roles are not
// self-assignable. Email uniqueness is enforced by the unique index, so
// two concurrent signups with the same address cannot both succeed.
func (s *AuthService) Register(req *dto.SignupRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := dto.NewUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresIn: s.tokens.Expiry().String(),
	}, nil
}

// Profile returns the user's own account plus the IDs of tasks currently
// assigned to them.
func (s *AuthService) Profile(userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	taskIDs := []uuid.UUID{}
	if err := s.db.Model(&models.Task{}).Where("assigned_to = ?", userID).Pluck("id", &taskIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch assigned tasks: %w", err)
	}

	return &dto.ProfileResponse{
		User:    dto.NewUserResponse(user),
		TaskIDs: taskIDs,
	}, nil
}

// UpdateProfile applies a partial self-service update. Empty fields are
// left unchanged; the role is never touched here.
func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}

	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if email != user.Email {
			var count int64
			if err := s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
		}
		updates["email"] = email
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	user, err = s.findUser(userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns every account. Callers must gate this behind the admin
// check; passwords and reset state never leave the service.
func (s *AuthService) ListUsers() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// DeleteUser removes an account. Users may delete only themselves; admins
// may delete anyone except their own account. Tasks assigned to the
// deleted user are unassigned, never deleted.
func (s *AuthService) DeleteUser(targetID uuid.UUID, actor Principal) (*dto.UserResponse, error) {
	if actor.IsAdmin() && actor.ID == targetID {
		return nil, ErrAdminSelfDelete
	}
	if !actor.IsAdmin() && actor.ID != targetID {
		return nil, ErrNotAccountOwner
	}

	user, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", targetID).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", targetID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// RequestPasswordReset starts the reset flow. An unknown email behaves
// exactly like a known one from the caller's point of view, which prevents
// account enumeration; the generated token is returned to the caller-side
// delivery mechanism (mail, logs in dev), never to the HTTP response.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(raw)
	expiry := time.Now().UTC().Add(s.cfg.ResetTokenTTL)

	updates := map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token. The password swap and the token
// clear happen in one conditional update keyed on the token itself, so two
// concurrent attempts with the same token yield exactly one success.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.Model(&models.User{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now().UTC()).
		Updates(map[string]interface{}{
			"password":           string(hash),
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reset password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidResetToken
	}
	return nil
}

func (s *AuthService) findUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
