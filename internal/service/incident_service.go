package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/policy"
	"github.com/lisalescano/back-mapp/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "incidents:stats"
	statsCacheTTL = 30 * time.Second
)

// IncidentService is the lifecycle engine: it validates allowed field
// mutations based on caller identity/role and current state, enforces the
// status rules, and stamps the resolution time.
type IncidentService interface {
	Create(ctx context.Context, actor *model.User, req dto.CreateIncidentRequest) (*dto.IncidentDetailResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.IncidentDetailResponse, error)
	List(ctx context.Context, filter dto.IncidentFilter) (*dto.IncidentListResponse, error)
	ListMine(ctx context.Context, actor *model.User, filter dto.MyIncidentsFilter) (*dto.MyIncidentsResponse, error)
	UpdateContent(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateIncidentRequest) (*dto.IncidentDetailResponse, error)
	UpdateStatus(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateIncidentStatusRequest) (*dto.IncidentDetailResponse, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
	Statistics(ctx context.Context, actor *model.User) (*dto.StatisticsResponse, error)
}

type incidentService struct {
	incidents repository.IncidentRepository
	rdb       *redis.Client
}

func NewIncidentService(incidents repository.IncidentRepository, rdb *redis.Client) IncidentService {
	return &incidentService{incidents: incidents, rdb: rdb}
}

func (s *incidentService) Create(ctx context.Context, actor *model.User, req dto.CreateIncidentRequest) (*dto.IncidentDetailResponse, error) {
	if !policy.Allow(policy.IncidentCreate, actor.Role, false) {
		return nil, ErrForbidden
	}

	// Status is forced to "reportado" regardless of input; priority defaults
	// to "media". The owner is always the caller.
	in := &model.Incident{
		Category:    req.Category,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
		Status:      model.StatusReportado,
		Priority:    model.PriorityMedia,
		UserID:      actor.ID,
	}
	if err := s.incidents.Create(ctx, in); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	created, err := s.incidents.FindByIDWithReporter(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &dto.IncidentDetailResponse{
		Message:  "Incidente reportado exitosamente",
		Incident: incidentToResponse(created, false),
	}, nil
}

func (s *incidentService) Get(ctx context.Context, id uuid.UUID) (*dto.IncidentDetailResponse, error) {
	in, err := s.incidents.FindByIDWithReporter(ctx, id)
	if err != nil {
		return nil, incidentNotFoundOr(err)
	}
	return &dto.IncidentDetailResponse{Incident: incidentToResponse(in, true)}, nil
}

func (s *incidentService) List(ctx context.Context, filter dto.IncidentFilter) (*dto.IncidentListResponse, error) {
	rows, total, err := s.incidents.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.IncidentListResponse{
		Total:     total,
		Incidents: incidentsToResponses(rows, false),
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

func (s *incidentService) ListMine(ctx context.Context, actor *model.User, filter dto.MyIncidentsFilter) (*dto.MyIncidentsResponse, error) {
	rows, err := s.incidents.ListByUser(ctx, actor.ID, filter.Status, filter.Category)
	if err != nil {
		return nil, err
	}
	return &dto.MyIncidentsResponse{
		Total:     len(rows),
		Incidents: incidentsToResponses(rows, false),
	}, nil
}

// UpdateContent applies the owner-editable fields only. Status, priority and
// adminNotes never pass through this path; the request type does not carry
// them, so client attempts to set them are silently dropped.
func (s *incidentService) UpdateContent(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateIncidentRequest) (*dto.IncidentDetailResponse, error) {
	in, err := s.incidents.FindByID(ctx, id)
	if err != nil {
		return nil, incidentNotFoundOr(err)
	}

	if !policy.Allow(policy.IncidentUpdateContent, actor.Role, in.UserID == actor.ID) {
		return nil, E(ErrForbidden, "No tienes permiso para editar este incidente")
	}

	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Latitude != nil {
		in.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		in.Longitude = *req.Longitude
	}
	if req.Address != nil {
		in.Address = req.Address
	}
	if req.ImageURL != nil {
		in.ImageURL = req.ImageURL
	}

	if err := s.incidents.Update(ctx, in); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	updated, err := s.incidents.FindByIDWithReporter(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.IncidentDetailResponse{
		Message:  "Incidente actualizado exitosamente",
		Incident: incidentToResponse(updated, false),
	}, nil
}

// UpdateStatus is the admin-only transition path. Moving to "solucionado"
// stamps ResolvedAt; any other target leaves a previously-set ResolvedAt
// untouched. Re-setting the current status is allowed, and no transition
// ordering is enforced.
func (s *incidentService) UpdateStatus(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateIncidentStatusRequest) (*dto.IncidentDetailResponse, error) {
	if !policy.Allow(policy.IncidentUpdateStatus, actor.Role, false) {
		return nil, ErrForbidden
	}

	in, err := s.incidents.FindByID(ctx, id)
	if err != nil {
		return nil, incidentNotFoundOr(err)
	}

	if req.Status != nil {
		in.Status = *req.Status
		if *req.Status == model.StatusSolucionado {
			now := time.Now()
			in.ResolvedAt = &now
		}
	}
	if req.Priority != nil {
		in.Priority = *req.Priority
	}
	if req.AdminNotes != nil {
		in.AdminNotes = req.AdminNotes
	}

	if err := s.incidents.Update(ctx, in); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	updated, err := s.incidents.FindByIDWithReporter(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.IncidentDetailResponse{
		Message:  "Estado del incidente actualizado exitosamente",
		Incident: incidentToResponse(updated, true),
	}, nil
}

func (s *incidentService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	in, err := s.incidents.FindByID(ctx, id)
	if err != nil {
		return incidentNotFoundOr(err)
	}

	if !policy.Allow(policy.IncidentDelete, actor.Role, in.UserID == actor.ID) {
		return E(ErrForbidden, "No tienes permiso para eliminar este incidente")
	}

	if err := s.incidents.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Statistics aggregates total, per-status and per-category counts. The
// aggregate is cached in Redis for a short window; every incident mutation
// invalidates the key.
func (s *incidentService) Statistics(ctx context.Context, actor *model.User) (*dto.StatisticsResponse, error) {
	if !policy.Allow(policy.IncidentStatistics, actor.Role, false) {
		return nil, ErrForbidden
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var resp dto.StatisticsResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	total, err := s.incidents.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.incidents.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.incidents.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	// Statuses always appear in the payload, even when zero.
	for _, st := range []string{model.StatusReportado, model.StatusEnReparacion, model.StatusSolucionado} {
		if _, ok := byStatus[st]; !ok {
			byStatus[st] = 0
		}
	}

	resp := &dto.StatisticsResponse{
		Total:      total,
		ByStatus:   byStatus,
		ByCategory: byCategory,
	}

	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			// Best effort: a cache write failure never fails the request.
			_ = s.rdb.Set(ctx, statsCacheKey, b, statsCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *incidentService) invalidateStats(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, statsCacheKey).Err()
	}
}

// incidentNotFoundOr translates the storage engine's empty-result error into
// the domain kind and passes everything else through.
func incidentNotFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return E(ErrNotFound, "Incidente no encontrado")
	}
	return err
}
