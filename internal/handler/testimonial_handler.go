package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type testimonialPayload struct {
	ClientName string `json:"clientName"`
	Company    string `json:"company"`
	Quote      string `json:"quote"`
	Rating     int    `json:"rating"`
	Approved   bool   `json:"approved"`
	SortOrder  int    `json:"sortOrder"`
}

func (p testimonialPayload) toInput() service.TestimonialInput {
	return service.TestimonialInput{
		ClientName: p.ClientName,
		Company:    p.Company,
		Quote:      p.Quote,
		Rating:     p.Rating,
		Approved:   p.Approved,
		SortOrder:  p.SortOrder,
	}
}

// ListTestimonials returns every testimonial for the admin screen.
func (a *API) ListTestimonials(c *gin.Context) {
	items, err := a.testimonials.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load testimonials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListApprovedTestimonials serves the public site.
func (a *API) ListApprovedTestimonials(c *gin.Context) {
	items, err := a.testimonials.ListApproved()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load testimonials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateTestimonial creates a new testimonial.
func (a *API) CreateTestimonial(c *gin.Context) {
	var payload testimonialPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.testimonials.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestimonialQuoteRequired):
			respondError(c, http.StatusBadRequest, "testimonial quote is required")
		case errors.Is(err, service.ErrTestimonialRatingInvalid):
			respondError(c, http.StatusBadRequest, "rating must be between 1 and 5")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create testimonial")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateTestimonial modifies an existing testimonial.
func (a *API) UpdateTestimonial(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid testimonial id")
		return
	}

	var payload testimonialPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.testimonials.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestimonialNotFound):
			respondError(c, http.StatusNotFound, "testimonial not found")
		case errors.Is(err, service.ErrTestimonialQuoteRequired):
			respondError(c, http.StatusBadRequest, "testimonial quote is required")
		case errors.Is(err, service.ErrTestimonialRatingInvalid):
			respondError(c, http.StatusBadRequest, "rating must be between 1 and 5")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update testimonial")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteTestimonial removes a testimonial.
func (a *API) DeleteTestimonial(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid testimonial id")
		return
	}

	if err := a.testimonials.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrTestimonialNotFound):
			respondError(c, http.StatusNotFound, "testimonial not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete testimonial")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted"})
}
