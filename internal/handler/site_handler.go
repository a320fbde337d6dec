package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

// GetSiteSettings returns site-wide content for both the public site and the
// admin settings screen.
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.All()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load site settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSiteSettings upserts a batch of settings.
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var payload map[string]string
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	if err := a.settings.SetAll(payload); err != nil {
		if errors.Is(err, service.ErrSettingKeyRequired) {
			respondError(c, http.StatusBadRequest, "setting key is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to save site settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings saved"})
}
