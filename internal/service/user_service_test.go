package service

import (
	"context"
	"testing"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*stubUserRepo, UserService, *model.User, *model.User) {
	t.Helper()
	repo := newStubUserRepo()
	admin := seedUser(repo, "admin", "admin@incidentes.com", model.RoleAdmin, true)
	vecino := seedUser(repo, "vecino1", "uno@example.com", model.RoleUser, true)
	return repo, NewUserService(repo), admin, vecino
}

func boolPtr(b bool) *bool { return &b }

func TestUserListRequiresAdmin(t *testing.T) {
	_, svc, _, vecino := newUserFixture(t)
	_, err := svc.List(context.Background(), vecino)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserListIncludesIncidentCounts(t *testing.T) {
	repo, svc, admin, vecino := newUserFixture(t)
	repo.incidentsByUser[vecino.ID] = []model.Incident{
		{ID: uuid.New(), Category: model.CategoryCalleRota, UserID: vecino.ID},
		{ID: uuid.New(), Category: model.CategoryOtro, UserID: vecino.ID},
	}

	resp, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	counts := make(map[string]int64)
	for _, u := range resp.Users {
		counts[u.Username] = u.IncidentCount
	}
	assert.EqualValues(t, 2, counts["vecino1"])
	assert.EqualValues(t, 0, counts["admin"])
}

func TestUserGetEmbedsIncidents(t *testing.T) {
	repo, svc, admin, vecino := newUserFixture(t)
	repo.incidentsByUser[vecino.ID] = []model.Incident{
		{ID: uuid.New(), Category: model.CategoryLuzCallejera, Status: model.StatusReportado, UserID: vecino.ID},
	}

	resp, err := svc.Get(context.Background(), admin, vecino.ID)
	require.NoError(t, err)
	assert.Equal(t, "vecino1", resp.User.Username)
	require.Len(t, resp.User.Incidents, 1)
	assert.Equal(t, model.CategoryLuzCallejera, resp.User.Incidents[0].Category)

	_, err = svc.Get(context.Background(), admin, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRolePromoteAndDemote(t *testing.T) {
	_, svc, admin, vecino := newUserFixture(t)
	ctx := context.Background()

	resp, err := svc.UpdateRole(ctx, admin, vecino.ID, dto.UpdateRoleRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	resp, err = svc.UpdateRole(ctx, admin, vecino.ID, dto.UpdateRoleRequest{Role: model.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, resp.User.Role)
}

func TestUpdateRoleSelfDemoteDenied(t *testing.T) {
	repo, svc, admin, _ := newUserFixture(t)

	_, err := svc.UpdateRole(context.Background(), admin, admin.ID, dto.UpdateRoleRequest{Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrSelfModification)
	assert.Equal(t, "No puedes quitarte el rol de administrador a ti mismo", err.Error())

	stored, _ := repo.FindByID(context.Background(), admin.ID)
	assert.Equal(t, model.RoleAdmin, stored.Role)
}

// Re-granting admin to yourself is a no-op, not a violation.
func TestUpdateRoleSelfAdminAllowed(t *testing.T) {
	_, svc, admin, _ := newUserFixture(t)
	resp, err := svc.UpdateRole(context.Background(), admin, admin.ID, dto.UpdateRoleRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}

func TestSetActiveToggles(t *testing.T) {
	_, svc, admin, vecino := newUserFixture(t)
	ctx := context.Background()

	resp, err := svc.SetActive(ctx, admin, vecino.ID, dto.UpdateUserStatusRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, resp.User.IsActive)
	assert.Equal(t, "Usuario desactivado exitosamente", resp.Message)

	resp, err = svc.SetActive(ctx, admin, vecino.ID, dto.UpdateUserStatusRequest{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, resp.User.IsActive)
	assert.Equal(t, "Usuario activado exitosamente", resp.Message)
}

func TestSetActiveSelfDeactivateDenied(t *testing.T) {
	repo, svc, admin, _ := newUserFixture(t)

	_, err := svc.SetActive(context.Background(), admin, admin.ID, dto.UpdateUserStatusRequest{IsActive: boolPtr(false)})
	assert.ErrorIs(t, err, ErrSelfModification)

	stored, _ := repo.FindByID(context.Background(), admin.ID)
	assert.True(t, stored.IsActive)
}

func TestDeleteUserGuards(t *testing.T) {
	repo, svc, admin, vecino := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Delete(ctx, vecino, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Delete(ctx, admin, admin.ID)
	assert.ErrorIs(t, err, ErrSelfModification)

	resp, err := svc.Delete(ctx, admin, vecino.ID)
	require.NoError(t, err)
	assert.Equal(t, vecino.ID.String(), resp.DeletedUserID)

	_, err = repo.FindByID(ctx, vecino.ID)
	assert.Error(t, err)
}

func TestUpdateProfileNormalizesEmail(t *testing.T) {
	repo, svc, _, vecino := newUserFixture(t)

	email := "  Nuevo@Example.COM "
	name := "Vecino Uno"
	resp, err := svc.UpdateProfile(context.Background(), vecino, dto.UpdateProfileRequest{Email: &email, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@example.com", resp.User.Email)
	require.NotNil(t, resp.User.FullName)
	assert.Equal(t, name, *resp.User.FullName)

	stored, _ := repo.FindByID(context.Background(), vecino.ID)
	assert.Equal(t, "nuevo@example.com", stored.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	_, svc, _, vecino := newUserFixture(t)

	taken := "Admin@Incidentes.com"
	_, err := svc.UpdateProfile(context.Background(), vecino, dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "El email ya está en uso", err.Error())
}

// Keeping your own current email is not a conflict.
func TestUpdateProfileSameEmailAllowed(t *testing.T) {
	_, svc, _, vecino := newUserFixture(t)

	same := "UNO@example.com"
	resp, err := svc.UpdateProfile(context.Background(), vecino, dto.UpdateProfileRequest{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "uno@example.com", resp.User.Email)
}
