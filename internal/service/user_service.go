package service

import (
	"context"
	"errors"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/policy"
	"github.com/lisalescano/back-mapp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers the admin user-management surface plus the self-service
// profile update. The self-modification guards only apply to the privileged
// paths: an admin can always edit their own fullName/email through
// UpdateProfile.
type UserService interface {
	List(ctx context.Context, actor *model.User) (*dto.UserListResponse, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*dto.UserDetailResponse, error)
	UpdateRole(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateRoleRequest) (*dto.UserMutationResponse, error)
	SetActive(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserStatusRequest) (*dto.UserMutationResponse, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) (*dto.UserDeleteResponse, error)
	UpdateProfile(ctx context.Context, actor *model.User, req dto.UpdateProfileRequest) (*dto.UserMutationResponse, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, actor *model.User) (*dto.UserListResponse, error) {
	if !policy.Allow(policy.UserList, actor.Role, false) {
		return nil, ErrForbidden
	}

	rows, err := s.users.ListWithIncidentCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserWithCountResponse, len(rows))
	for i, row := range rows {
		out[i] = dto.UserWithCountResponse{
			UserResponse:  UserToResponse(&row.User),
			IncidentCount: row.IncidentCount,
		}
	}
	return &dto.UserListResponse{Users: out, Total: len(out)}, nil
}

func (s *userService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*dto.UserDetailResponse, error) {
	if !policy.Allow(policy.UserGet, actor.Role, false) {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByIDWithIncidents(ctx, id)
	if err != nil {
		return nil, userNotFoundOr(err)
	}

	resp := &dto.UserDetailResponse{}
	resp.User.UserResponse = UserToResponse(user)
	resp.User.Incidents = incidentsToResponses(user.Incidents, false)
	return resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateRoleRequest) (*dto.UserMutationResponse, error) {
	if !policy.Allow(policy.UserUpdateRole, actor.Role, false) {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFoundOr(err)
	}

	// An admin may not strip their own admin role.
	if user.ID == actor.ID && req.Role == model.RoleUser {
		return nil, E(ErrSelfModification, "No puedes quitarte el rol de administrador a ti mismo")
	}

	user.Role = req.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserMutationResponse{
		Message: "Rol actualizado exitosamente",
		User:    UserToResponse(user),
	}, nil
}

func (s *userService) SetActive(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserStatusRequest) (*dto.UserMutationResponse, error) {
	if !policy.Allow(policy.UserSetActive, actor.Role, false) {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFoundOr(err)
	}

	active := *req.IsActive
	if user.ID == actor.ID && !active {
		return nil, E(ErrSelfModification, "No puedes desactivar tu propia cuenta")
	}

	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	msg := "Usuario desactivado exitosamente"
	if active {
		msg = "Usuario activado exitosamente"
	}
	return &dto.UserMutationResponse{Message: msg, User: UserToResponse(user)}, nil
}

func (s *userService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) (*dto.UserDeleteResponse, error) {
	if !policy.Allow(policy.UserDelete, actor.Role, false) {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFoundOr(err)
	}

	if user.ID == actor.ID {
		return nil, E(ErrSelfModification, "No puedes eliminar tu propia cuenta")
	}

	// The FK cascade removes the user's incidents with the row.
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.UserDeleteResponse{
		Message:       "Usuario eliminado exitosamente",
		DeletedUserID: id.String(),
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *model.User, req dto.UpdateProfileRequest) (*dto.UserMutationResponse, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, userNotFoundOr(err)
	}

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, E(ErrConflict, "El email ya está en uso")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserMutationResponse{
		Message: "Perfil actualizado exitosamente",
		User:    UserToResponse(user),
	}, nil
}

func userNotFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return E(ErrNotFound, "Usuario no encontrado")
	}
	return err
}
