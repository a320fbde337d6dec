package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type jobPayload struct {
	Title          string `json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Active         bool   `json:"active"`
}

func (p jobPayload) toInput() service.JobInput {
	return service.JobInput{
		Title:          p.Title,
		Department:     p.Department,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Active:         p.Active,
	}
}

// ListJobs returns every posting for the admin screen.
func (a *API) ListJobs(c *gin.Context) {
	items, err := a.jobs.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load job postings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListActiveJobs serves the public careers page.
func (a *API) ListActiveJobs(c *gin.Context) {
	items, err := a.jobs.ListActive()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load job postings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetJob returns one posting.
func (a *API) GetJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job id")
		return
	}

	item, err := a.jobs.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "job posting not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load job posting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateJob creates a new posting.
func (a *API) CreateJob(c *gin.Context) {
	var payload jobPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.jobs.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobTitleRequired):
			respondError(c, http.StatusBadRequest, "job title is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create job posting")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateJob modifies an existing posting.
func (a *API) UpdateJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job id")
		return
	}

	var payload jobPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.jobs.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			respondError(c, http.StatusNotFound, "job posting not found")
		case errors.Is(err, service.ErrJobTitleRequired):
			respondError(c, http.StatusBadRequest, "job title is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update job posting")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteJob removes a posting.
func (a *API) DeleteJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := a.jobs.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			respondError(c, http.StatusNotFound, "job posting not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete job posting")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "job posting deleted"})
}
