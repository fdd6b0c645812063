package handler

import (
	"net/http"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/middleware"
	"github.com/lisalescano/back-mapp/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateRole(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetActive(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), middleware.GetUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateOwnProfile is the self-service path: fullName and email only, always
// permitted for the authenticated caller.
func (h *UsersHandler) UpdateOwnProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProfile(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
