package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type teamMemberPayload struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photoUrl"`
	Email     string `json:"email"`
	SortOrder int    `json:"sortOrder"`
	SessionID string `json:"sessionId"`
}

func (p teamMemberPayload) toInput() service.TeamMemberInput {
	return service.TeamMemberInput{
		Name:      p.Name,
		Role:      p.Role,
		Bio:       p.Bio,
		PhotoURL:  p.PhotoURL,
		Email:     p.Email,
		SortOrder: p.SortOrder,
	}
}

// ListTeamMembers returns the team roster.
func (a *API) ListTeamMembers(c *gin.Context) {
	items, err := a.team.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load team members")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateTeamMember creates a new team member and commits the photo upload.
func (a *API) CreateTeamMember(c *gin.Context) {
	var payload teamMemberPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.team.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamMemberNameRequired):
			respondError(c, http.StatusBadRequest, "team member name is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create team member")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.PhotoURL != "" {
		a.staging.Commit(sessionID, item.PhotoURL)
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateTeamMember modifies a team member, releasing a replaced photo.
func (a *API) UpdateTeamMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid team member id")
		return
	}

	var payload teamMemberPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, previousPhoto, err := a.team.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamMemberNotFound):
			respondError(c, http.StatusNotFound, "team member not found")
		case errors.Is(err, service.ErrTeamMemberNameRequired):
			respondError(c, http.StatusBadRequest, "team member name is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update team member")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.PhotoURL != "" {
		a.staging.Commit(sessionID, item.PhotoURL)
	}
	if previousPhoto != "" && previousPhoto != item.PhotoURL {
		a.galleries.ReleaseFile(c.Request.Context(), previousPhoto, service.ReferenceExclusion{})
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteTeamMember removes a team member and their now-unreferenced photo.
func (a *API) DeleteTeamMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid team member id")
		return
	}

	photoURL, err := a.team.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamMemberNotFound):
			respondError(c, http.StatusNotFound, "team member not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete team member")
		}
		return
	}

	a.galleries.ReleaseFile(c.Request.Context(), photoURL, service.ReferenceExclusion{})

	c.JSON(http.StatusOK, gin.H{"message": "team member deleted"})
}
