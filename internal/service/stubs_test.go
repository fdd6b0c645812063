package service

import (
	"context"
	"sort"
	"time"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
	// incidentsByUser feeds FindByIDWithIncidents and ListWithIncidentCounts.
	incidentsByUser map[uuid.UUID][]model.Incident
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:           make(map[uuid.UUID]*model.User),
		incidentsByUser: make(map[uuid.UUID][]model.Incident),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByIDWithIncidents(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	cp.Incidents = r.incidentsByUser[id]
	return &cp, nil
}

func (r *stubUserRepo) ListWithIncidentCounts(_ context.Context) ([]repository.UserWithCount, error) {
	out := make([]repository.UserWithCount, 0, len(r.users))
	for id, u := range r.users {
		out = append(out, repository.UserWithCount{
			User:          *u,
			IncidentCount: int64(len(r.incidentsByUser[id])),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) FindAnyAdmin(_ context.Context) (*model.User, error) {
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	delete(r.incidentsByUser, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubIncidentRepo struct {
	incidents map[uuid.UUID]*model.Incident
	// reporters resolves the Reporter preload.
	reporters map[uuid.UUID]*model.User
	seq       int
}

func newStubIncidentRepo() *stubIncidentRepo {
	return &stubIncidentRepo{
		incidents: make(map[uuid.UUID]*model.Incident),
		reporters: make(map[uuid.UUID]*model.User),
	}
}

func (r *stubIncidentRepo) Create(_ context.Context, in *model.Incident) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	// Monotonic timestamps keep newest-first ordering deterministic.
	r.seq++
	in.CreatedAt = time.Unix(int64(r.seq), 0)
	in.UpdatedAt = in.CreatedAt
	r.incidents[in.ID] = in
	return nil
}

func (r *stubIncidentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Incident, error) {
	in, ok := r.incidents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return in, nil
}

func (r *stubIncidentRepo) FindByIDWithReporter(_ context.Context, id uuid.UUID) (*model.Incident, error) {
	in, ok := r.incidents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *in
	cp.Reporter = r.reporters[in.UserID]
	return &cp, nil
}

func (r *stubIncidentRepo) sorted() []model.Incident {
	out := make([]model.Incident, 0, len(r.incidents))
	for _, in := range r.incidents {
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubIncidentRepo) List(_ context.Context, filter dto.IncidentFilter) ([]model.Incident, int64, error) {
	var matched []model.Incident
	for _, in := range r.sorted() {
		if filter.Status != "" && in.Status != filter.Status {
			continue
		}
		if filter.Category != "" && in.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && in.Priority != filter.Priority {
			continue
		}
		if filter.UserID != "" && in.UserID.String() != filter.UserID {
			continue
		}
		matched = append(matched, in)
	}
	total := int64(len(matched))

	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubIncidentRepo) ListByUser(_ context.Context, userID uuid.UUID, status, category string) ([]model.Incident, error) {
	var out []model.Incident
	for _, in := range r.sorted() {
		if in.UserID != userID {
			continue
		}
		if status != "" && in.Status != status {
			continue
		}
		if category != "" && in.Category != category {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func (r *stubIncidentRepo) Update(_ context.Context, in *model.Incident) error {
	if _, ok := r.incidents[in.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	in.UpdatedAt = time.Now()
	r.incidents[in.ID] = in
	return nil
}

func (r *stubIncidentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.incidents, id)
	return nil
}

func (r *stubIncidentRepo) CountTotal(_ context.Context) (int64, error) {
	return int64(len(r.incidents)), nil
}

func (r *stubIncidentRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, in := range r.incidents {
		out[in.Status]++
	}
	return out, nil
}

func (r *stubIncidentRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, in := range r.incidents {
		out[in.Category]++
	}
	return out, nil
}

var _ repository.IncidentRepository = (*stubIncidentRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func seedUser(repo *stubUserRepo, username, email, role string, active bool) *model.User {
	u := &model.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		// bcrypt("secret123", cost 4) is irrelevant here; auth tests hash for real.
		PasswordHash: "x",
		Role:         role,
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
	repo.users[u.ID] = u
	return u
}
