package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type subscribePayload struct {
	Email string `json:"email"`
}

// SubmitContactMessage accepts a public contact form submission.
func (a *API) SubmitContactMessage(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.contacts.Submit(service.ContactInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNameRequired):
			respondError(c, http.StatusBadRequest, "name is required")
		case errors.Is(err, service.ErrContactEmailRequired):
			respondError(c, http.StatusBadRequest, "a valid email is required")
		case errors.Is(err, service.ErrContactMessageRequired):
			respondError(c, http.StatusBadRequest, "message is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to submit message")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ListContactMessages returns the admin inbox.
func (a *API) ListContactMessages(c *gin.Context) {
	items, err := a.contacts.ListMessages()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// MarkContactMessageRead flags a message as handled.
func (a *API) MarkContactMessageRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := a.contacts.MarkRead(id); err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			respondError(c, http.StatusNotFound, "message not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update message")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// DeleteContactMessage removes a message.
func (a *API) DeleteContactMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := a.contacts.DeleteMessage(id); err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			respondError(c, http.StatusNotFound, "message not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete message")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// Subscribe adds an email to the newsletter list.
func (a *API) Subscribe(c *gin.Context) {
	var payload subscribePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.contacts.Subscribe(payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriberEmailInvalid):
			respondError(c, http.StatusBadRequest, "a valid email is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": item.Email})
}

// Unsubscribe deactivates a newsletter address.
func (a *API) Unsubscribe(c *gin.Context) {
	var payload subscribePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	if err := a.contacts.Unsubscribe(payload.Email); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to unsubscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// ListSubscribers returns active newsletter subscribers for the admin.
func (a *API) ListSubscribers(c *gin.Context) {
	items, err := a.contacts.ListSubscribers()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
