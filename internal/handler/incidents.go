package handler

import (
	"net/http"

	"github.com/lisalescano/back-mapp/internal/apierror"
	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/middleware"
	"github.com/lisalescano/back-mapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IncidentsHandler struct{ svc service.IncidentService }

func NewIncidentsHandler(svc service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{svc: svc}
}

// Create godoc
// @Summary Reportar un incidente
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateIncidentRequest true "Incidente"
// @Success 201 {object} dto.IncidentDetailResponse
// @Router /api/incidents [post]
func (h *IncidentsHandler) Create(c *gin.Context) {
	var req dto.CreateIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List is public: anyone can browse reported incidents with filters and
// pagination.
func (h *IncidentsHandler) List(c *gin.Context) {
	var filter dto.IncidentFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IncidentsHandler) GetMine(c *gin.Context) {
	var filter dto.MyIncidentsFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListMine(c.Request.Context(), middleware.GetUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Statistics godoc
// @Summary Estadísticas agregadas de incidentes (solo admin)
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatisticsResponse
// @Router /api/incidents/statistics [get]
func (h *IncidentsHandler) Statistics(c *gin.Context) {
	resp, err := h.svc.Statistics(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IncidentsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IncidentsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateContent(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IncidentsHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateIncidentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IncidentsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incidente eliminado exitosamente"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}
