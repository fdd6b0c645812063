package service

import (
	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"
)

// UserToResponse strips the password hash and flattens the account for the
// wire. Exported because handlers need it for the profile endpoint.
func UserToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// incidentToResponse converts a row to its wire shape. The reporter email is
// only exposed on detail and admin views (withEmail).
func incidentToResponse(in *model.Incident, withEmail bool) dto.IncidentResponse {
	resp := dto.IncidentResponse{
		ID:          in.ID.String(),
		Category:    in.Category,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     in.Address,
		Status:      in.Status,
		Priority:    in.Priority,
		AdminNotes:  in.AdminNotes,
		ResolvedAt:  in.ResolvedAt,
		ImageURL:    in.ImageURL,
		UserID:      in.UserID.String(),
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.Reporter != nil {
		resp.Reporter = &dto.ReporterResponse{
			ID:       in.Reporter.ID.String(),
			Username: in.Reporter.Username,
			FullName: in.Reporter.FullName,
		}
		if withEmail {
			resp.Reporter.Email = in.Reporter.Email
		}
	}
	return resp
}

func incidentsToResponses(rows []model.Incident, withEmail bool) []dto.IncidentResponse {
	out := make([]dto.IncidentResponse, len(rows))
	for i := range rows {
		out[i] = incidentToResponse(&rows[i], withEmail)
	}
	return out
}
