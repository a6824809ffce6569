package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := &contactHandler{contactService: contactService}

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
	}
}

// createContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to create contact")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Contact created successfully", slog.Int64("contact_id", contact.ContactID))
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListContactsResponse
// @Security BearerAuth
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, dto.ListContactsResponse{Contacts: dto.ToListContactResponse(contacts)})
}

// getContact godoc
// @Summary Get a contact
// @Tags contacts
// @Produce  json
// @Param   id path int true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownContact"
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	contactID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), contactID)
	if err != nil {
		respondError(c, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update a contact
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   id path int true "Contact ID"
// @Param   contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownContact"
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	contactID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid contact ID")
		return
	}
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), contactID, req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deleteContact godoc
// @Summary Delete a contact
// @Tags contacts
// @Param   id path int true "Contact ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "UnknownContact"
// @Failure 409 {object} dto.ErrorResponse "ContactInUse"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *contactHandler) deleteContact(c *gin.Context) {
	contactID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid contact ID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), contactID); err != nil {
		respondError(c, err, "Failed to delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}
