package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type vendorPayload struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Trades      string `json:"trades"`
	Message     string `json:"message"`
}

type vendorStatusPayload struct {
	Status string `json:"status"`
}

// SubmitVendorApplication accepts a public vendor/subcontractor application.
func (a *API) SubmitVendorApplication(c *gin.Context) {
	var payload vendorPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.vendors.Submit(service.VendorInput{
		CompanyName: payload.CompanyName,
		ContactName: payload.ContactName,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Trades:      payload.Trades,
		Message:     payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorCompanyRequired):
			respondError(c, http.StatusBadRequest, "company name is required")
		case errors.Is(err, service.ErrVendorEmailRequired):
			respondError(c, http.StatusBadRequest, "email is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to submit application")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ListVendorApplications returns applications for admin review.
func (a *API) ListVendorApplications(c *gin.Context) {
	items, err := a.vendors.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load applications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SetVendorStatus moves an application through review.
func (a *API) SetVendorStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid application id")
		return
	}

	var payload vendorStatusPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.vendors.SetStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			respondError(c, http.StatusNotFound, "application not found")
		case errors.Is(err, service.ErrVendorStatusInvalid):
			respondError(c, http.StatusBadRequest, "invalid status")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update application")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteVendorApplication removes an application.
func (a *API) DeleteVendorApplication(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid application id")
		return
	}

	if err := a.vendors.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			respondError(c, http.StatusNotFound, "application not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete application")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "application deleted"})
}
