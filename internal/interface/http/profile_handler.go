package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/application"
	"github.com/dugouthq/dugout/internal/interface/middleware"
	"github.com/dugouthq/dugout/pkg/response"
	"github.com/dugouthq/dugout/pkg/validation"
)

type ProfileHandler struct {
	Svc     *application.ProfileService
	Content *application.ContentService
	Logger  *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, content *application.ContentService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Content: content, Logger: logger}
}

type replaceFavoritesRequest struct {
	TeamIDs   []int64 `json:"teamIds"`
	PlayerIDs []int64 `json:"playerIds"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	// The password hash is dropped here rather than trusted to struct tags.
	response.Success(c, http.StatusOK, gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"favoriteTeams":   u.FavoriteTeams,
		"favoritePlayers": u.FavoritePlayers,
		"createdAt":       u.CreatedAt,
		"updatedAt":       u.UpdatedAt,
	}, "profile", nil)
}

func (h *ProfileHandler) AddFavoritePlayer(c *gin.Context) {
	h.mutateFavorite(c, "playerId", h.Svc.AddFavoritePlayer)
}

func (h *ProfileHandler) RemoveFavoritePlayer(c *gin.Context) {
	h.mutateFavorite(c, "playerId", h.Svc.RemoveFavoritePlayer)
}

func (h *ProfileHandler) AddFavoriteTeam(c *gin.Context) {
	h.mutateFavorite(c, "teamId", h.Svc.AddFavoriteTeam)
}

func (h *ProfileHandler) RemoveFavoriteTeam(c *gin.Context) {
	h.mutateFavorite(c, "teamId", h.Svc.RemoveFavoriteTeam)
}

// mutateFavorite is the shared shape of the four single-member endpoints.
// The response always reports whether the set actually changed, so a repeated
// add or a remove of a non-member is a 200 with changed=false.
func (h *ProfileHandler) mutateFavorite(c *gin.Context, param string, op func(ctx context.Context, userID string, subjectID int64) (bool, error)) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+param, nil)
		return
	}
	changed, err := op(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("favorite mutation failed")
		response.Error[any](c, http.StatusInternalServerError, "favorite mutation failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": changed}, "favorites updated", nil)
}

// ReplaceFavorites swaps both sets wholesale, matching the onboarding flow
// where the client submits its entire selection at once.
func (h *ProfileHandler) ReplaceFavorites(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req replaceFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	for _, id := range append(append([]int64{}, req.TeamIDs...), req.PlayerIDs...) {
		if id <= 0 {
			response.Error[any](c, http.StatusBadRequest, "ids must be positive", nil)
			return
		}
	}
	if err := h.Svc.ReplaceFavorites(c.Request.Context(), uid, req.TeamIDs, req.PlayerIDs); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("replace favorites failed")
		response.Error[any](c, http.StatusInternalServerError, "replace favorites failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"replaced": true}, "favorites replaced", nil)
}

func (h *ProfileHandler) FavoriteTeams(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ids, err := h.Svc.FavoriteTeamIDs(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teamIds": ids}, "favorite teams", nil)
}

func (h *ProfileHandler) FavoritePlayers(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ids, err := h.Svc.FavoritePlayerIDs(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"playerIds": ids}, "favorite players", nil)
}

// Digest returns highlight videos for every favorite the caller follows.
func (h *ProfileHandler) Digest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	videos, err := h.Content.Digest(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusBadGateway, "digest unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"videos": videos}, "daily digest", nil)
}
