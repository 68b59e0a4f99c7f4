package database

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"gorm.io/gorm"
)

// UserModel represents the database model for accounts
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// UserRepositoryAdapter implements the UserRepository port using GORM
type UserRepositoryAdapter struct {
	db *gorm.DB
}

func NewUserRepositoryAdapter(db *gorm.DB) ports.UserRepository {
	return &UserRepositoryAdapter{db: db}
}

// Create inserts a new account and fills in its ID and timestamps
func (r *UserRepositoryAdapter) Create(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}

	model := dataToModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.Wrap(errors.ErrorTypeAlreadyExists, "user already exists", err)
		}
		return errors.NewDatabaseError("failed to create user", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("user ID cannot be zero")
	}

	var model UserModel
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, errors.NewDatabaseError("failed to find user by ID", result.Error)
	}
	return modelToData(&model), nil
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	if email == "" {
		return nil, errors.NewValidationError("email cannot be empty")
	}

	var model UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, errors.NewDatabaseError("failed to find user by email", result.Error)
	}
	return modelToData(&model), nil
}

func (r *UserRepositoryAdapter) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count)
	if result.Error != nil {
		return false, errors.NewDatabaseError("failed to check existing user", result.Error)
	}
	return count > 0, nil
}

func dataToModel(data *ports.UserData) *UserModel {
	return &UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func modelToData(model *UserModel) *ports.UserData {
	return &ports.UserData{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// isUniqueViolation also matches raw driver messages for connections opened
// without TranslateError
func isUniqueViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
