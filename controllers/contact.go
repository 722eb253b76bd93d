package controllers

import (
	"context"
	"net/http"

	"ramani-storefront/models"
	"ramani-storefront/services"
	"ramani-storefront/utils"
)

type ContactController struct {
	Contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{Contacts: contacts}
}

// Submit stores a contact form message
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	submission, err := cc.Contacts.Submit(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":    "Thank you for contacting us. We will get back to you soon.",
		"submission": submission,
	})
}
