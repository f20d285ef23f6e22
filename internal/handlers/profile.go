package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/services"
)

type ProfileHandler struct {
	log            *logger.Logger
	profileService services.ProfileService
	insightService services.InsightService
}

func NewProfileHandler(log *logger.Logger, profileService services.ProfileService, insightService services.InsightService) *ProfileHandler {
	return &ProfileHandler{
		log:            log.With("handler", "ProfileHandler"),
		profileService: profileService,
		insightService: insightService,
	}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit := queryInt(c, "limit", 100)
	offset := queryInt(c, "offset", 0)

	profiles, total, err := h.profileService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("ListProfiles failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_profiles_failed", err)
		return
	}
	RespondOK(c, gin.H{"profiles": profiles, "total": total})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email := c.Param("email")
	profile, err := h.profileService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		h.log.Error("GetProfile failed", "error", err, "email", email)
		RespondError(c, http.StatusInternalServerError, "load_profile_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

func (h *ProfileHandler) GetProfileInsight(c *gin.Context) {
	email := c.Param("email")
	insight, err := h.insightService.GetInsight(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		h.log.Error("GetProfileInsight failed", "error", err, "email", email)
		RespondError(c, http.StatusInternalServerError, "load_insight_failed", err)
		return
	}
	RespondOK(c, gin.H{"insight": insight})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
