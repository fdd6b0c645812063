package repository

import (
	"context"

	"github.com/lisalescano/back-mapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserWithCount is the listing projection: account plus incident count.
type UserWithCount struct {
	model.User
	IncidentCount int64
}

// UserRepository defines the data access contract for user accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs. Absence is reported as
// gorm.ErrRecordNotFound; callers translate it to their own error kinds.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	// FindByIDWithIncidents preloads the user's incidents, newest first.
	FindByIDWithIncidents(ctx context.Context, id uuid.UUID) (*model.User, error)
	// ListWithIncidentCounts returns all users newest first with a per-user
	// incident count, never loading the incident rows themselves.
	ListWithIncidentCounts(ctx context.Context) ([]UserWithCount, error)
	FindAnyAdmin(ctx context.Context) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	// Delete removes the row; incidents go with it via the FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByIDWithIncidents(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("Incidents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ListWithIncidentCounts(ctx context.Context) ([]UserWithCount, error) {
	var rows []UserWithCount
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.*, COUNT(incidents.id) AS incident_count").
		Joins("LEFT JOIN incidents ON incidents.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *userRepo) FindAnyAdmin(ctx context.Context) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("role = ?", model.RoleAdmin).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}
