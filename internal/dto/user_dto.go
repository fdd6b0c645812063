package dto

// ─── Request DTOs (admin user management + self profile) ────────────────────

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,user_role"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserWithCountResponse is the /users listing row: the account plus how many
// incidents it has reported (password hash never included).
type UserWithCountResponse struct {
	UserResponse
	IncidentCount int64 `json:"incidentCount"`
}

type UserListResponse struct {
	Users []UserWithCountResponse `json:"users"`
	Total int                     `json:"total"`
}

// UserDetailResponse embeds the user's full incident list.
type UserDetailResponse struct {
	User struct {
		UserResponse
		Incidents []IncidentResponse `json:"incidents"`
	} `json:"user"`
}

type UserMutationResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type UserDeleteResponse struct {
	Message       string `json:"message"`
	DeletedUserID string `json:"deletedUserId"`
}
