package repository

import (
	"context"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncidentRepository defines the data access contract for incident reports.
// No multi-row atomic operations exist; each call is a single statement and
// relies on the storage engine's row-level write semantics.
type IncidentRepository interface {
	Create(ctx context.Context, in *model.Incident) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	// FindByIDWithReporter preloads the trimmed reporter association.
	FindByIDWithReporter(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	// List returns one page plus the total row count, newest-created-first.
	List(ctx context.Context, filter dto.IncidentFilter) ([]model.Incident, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status, category string) ([]model.Incident, error)
	Update(ctx context.Context, in *model.Incident) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregates for the admin statistics view.
	CountTotal(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type incidentRepo struct{ db *gorm.DB }

func NewIncidentRepository(db *gorm.DB) IncidentRepository { return &incidentRepo{db: db} }

func (r *incidentRepo) Create(ctx context.Context, in *model.Incident) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *incidentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var in model.Incident
	err := r.db.WithContext(ctx).First(&in, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *incidentRepo) FindByIDWithReporter(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var in model.Incident
	err := r.db.WithContext(ctx).Preload("Reporter").First(&in, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *incidentRepo) List(ctx context.Context, filter dto.IncidentFilter) ([]model.Incident, int64, error) {
	var incidents []model.Incident
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Incident{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Reporter").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&incidents).Error
	return incidents, total, err
}

func (r *incidentRepo) ListByUser(ctx context.Context, userID uuid.UUID, status, category string) ([]model.Incident, error) {
	var incidents []model.Incident
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&incidents).Error
	return incidents, err
}

func (r *incidentRepo) Update(ctx context.Context, in *model.Incident) error {
	return r.db.WithContext(ctx).Save(in).Error
}

func (r *incidentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Incident{}, "id = ?", id).Error
}

func (r *incidentRepo) CountTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Incident{}).Count(&total).Error
	return total, err
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *incidentRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

func (r *incidentRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "category")
}

func (r *incidentRepo) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(&model.Incident{}).
		Select(column + " AS key, COUNT(id) AS count").
		Group(column).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}
