package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/application"
	"github.com/dugouthq/dugout/pkg/response"
)

// ContentHandler serves the public, read-only aggregation endpoints. Only a
// failed analytical query surfaces as an error; enrichment failures degrade
// inside the payload.
type ContentHandler struct {
	Svc    *application.ContentService
	Logger *logrus.Logger
}

func NewContentHandler(svc *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Svc: svc, Logger: logger}
}

// limitParam reads ?limit=K. Absent or malformed values fall back to the
// service default; the service clamps the upper bound.
func limitParam(c *gin.Context) int {
	v := c.Query("limit")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (h *ContentHandler) TopPlayers(c *gin.Context) {
	subjects, err := h.Svc.TopPlayers(c.Request.Context(), limitParam(c))
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "analytics unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"players": subjects}, "top followed players", nil)
}

func (h *ContentHandler) TopTeams(c *gin.Context) {
	subjects, err := h.Svc.TopTeams(c.Request.Context(), limitParam(c))
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "analytics unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teams": subjects}, "top followed teams", nil)
}

func (h *ContentHandler) Relevant(c *gin.Context) {
	rows, err := h.Svc.RelevantContent(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "analytics unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": rows}, "most relevant content", nil)
}

func (h *ContentHandler) TeamContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("teamId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid teamId", nil)
		return
	}
	rows, err := h.Svc.TeamContent(c.Request.Context(), id)
	if err != nil {
		h.contentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": rows}, "team content", nil)
}

func (h *ContentHandler) PlayerContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("playerId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid playerId", nil)
		return
	}
	rows, err := h.Svc.PlayerContent(c.Request.Context(), id)
	if err != nil {
		h.contentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": rows}, "player content", nil)
}

func (h *ContentHandler) contentError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrUpstreamUnavailable) {
		response.Error[any](c, http.StatusBadGateway, "analytics unavailable", nil)
		return
	}
	h.Logger.WithError(err).Error("content query failed")
	response.Error[any](c, http.StatusInternalServerError, "content query failed", nil)
}
