package handler

import (
	"net/http"

	"github.com/lisalescano/back-mapp/internal/apierror"

	"github.com/gin-gonic/gin"
)

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, apierror.New("Ruta no encontrada"))
}
