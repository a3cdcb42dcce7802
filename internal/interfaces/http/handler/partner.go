package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strings"

	partnerapp "github.com/crm/backend/internal/application/partner"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Confirmation messages returned in meta.message
const (
	MsgPartnerCreated = "Partner created"
	MsgPartnerFound   = "Partner found"
	MsgPartnerList    = "List of partners"
	MsgSearchResults  = "Search results"
	MsgUpdated        = "Updated"
	MsgDeleted        = "Deleted"
)

// PartnerService is the application service behind PartnerHandler
type PartnerService interface {
	Create(ctx context.Context, actor string, req partnerapp.PartnerRequest) (*partnerapp.PartnerResponse, error)
	QuickEntry(ctx context.Context, req partnerapp.QuickEntryRequest) (*partnerapp.PartnerResponse, error)
	GetByID(ctx context.Context, id string) (*partnerapp.PartnerResponse, error)
	List(ctx context.Context, req partnerapp.ListPartnersRequest) (*partnerapp.PartnerPage, error)
	Search(ctx context.Context, req partnerapp.SearchPartnersRequest) (*partnerapp.PartnerPage, error)
	Replace(ctx context.Context, id string, req partnerapp.PartnerRequest) (*partnerapp.PartnerResponse, error)
	UpdateIdentity(ctx context.Context, id string, req partnerapp.IdentityRequest, set []string) (*partnerapp.PartnerResponse, error)
	UpdateRelationship(ctx context.Context, id string, req partnerapp.RelationshipRequest, set []string) (*partnerapp.PartnerResponse, error)
	UpdateFinancialEstimation(ctx context.Context, id string, req partnerapp.FinancialEstimationRequest, set []string) (*partnerapp.PartnerResponse, error)
	UpdateAnalysis(ctx context.Context, id string, req partnerapp.AnalysisRequest, set []string) (*partnerapp.PartnerResponse, error)
	UpdateAcquisition(ctx context.Context, id string, req partnerapp.AcquisitionRequest, set []string) (*partnerapp.PartnerResponse, error)
	Delete(ctx context.Context, id string) error
}

// PartnerHandler serves the /partners endpoints
type PartnerHandler struct {
	BaseHandler
	service PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(service PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// Create handles POST /partners
//
// @ID           createPartner
// @Summary      Create a partner
// @Description  Create a partner from a full document
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string false "Acting user, recorded as created_by"
// @Param        request body partnerapp.PartnerRequest true "Partner document"
// @Success      201 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partnerapp.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, MsgPartnerCreated, created)
}

// QuickEntry handles POST /partners/quick-entry
//
// @ID           quickEntryPartner
// @Summary      Quick entry
// @Description  Create a partner from the short field-visit form
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.QuickEntryRequest true "Quick entry form"
// @Success      201 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/quick-entry [post]
func (h *PartnerHandler) QuickEntry(c *gin.Context) {
	var req partnerapp.QuickEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	created, err := h.service.QuickEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, MsgPartnerCreated, created)
}

// List handles GET /partners
//
// @ID           listPartners
// @Summary      List partners
// @Description  List non-deleted partners, newest first, with conjunctive filters
// @Tags         partners
// @Produce      json
// @Param        query partnerapp.ListPartnersRequest false "Filters and paging"
// @Success      200 {object} dto.Envelope{data=[]partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	var req partnerapp.ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, MsgPartnerList, page)
}

// SearchRedirect handles GET /partners/search by redirecting to the
// trailing-slash form with the query string intact.
func (h *PartnerHandler) SearchRedirect(c *gin.Context) {
	target := url.URL{Path: c.Request.URL.Path + "/", RawQuery: c.Request.URL.RawQuery}
	c.Header("Location", target.String())
	c.Status(http.StatusTemporaryRedirect)
}

// Search handles GET /partners/search/
//
// @ID           searchPartners
// @Summary      Search partners
// @Description  Full-text search over brand, manager, category, city, tags and notes
// @Tags         partners
// @Produce      json
// @Param        query partnerapp.SearchPartnersRequest false "Query, filters and paging"
// @Success      200 {object} dto.Envelope{data=[]partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/search/ [get]
func (h *PartnerHandler) Search(c *gin.Context) {
	var req partnerapp.SearchPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	page, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, MsgSearchResults, page)
}

// GetByID handles GET /partners/:id
//
// @ID           getPartnerById
// @Summary      Get partner by ID
// @Description  Retrieve a partner, including soft-deleted ones
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, MsgPartnerFound, found)
}

// Replace handles PUT /partners/:id
//
// @ID           replacePartner
// @Summary      Replace a partner
// @Description  Replace all sections of a partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.PartnerRequest true "Partner document"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id} [put]
func (h *PartnerHandler) Replace(c *gin.Context) {
	var req partnerapp.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	updated, err := h.service.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, MsgUpdated, updated)
}

// UpdateIdentity handles PATCH /partners/:id/identity
//
// @ID           updatePartnerIdentity
// @Summary      Patch identity
// @Description  Update only the identity fields present in the body
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.IdentityRequest true "Identity fields"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id}/identity [patch]
func (h *PartnerHandler) UpdateIdentity(c *gin.Context) {
	var req partnerapp.IdentityRequest
	set, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	h.respondPatch(c)(h.service.UpdateIdentity(c.Request.Context(), c.Param("id"), req, set))
}

// UpdateRelationship handles PATCH /partners/:id/relationship
//
// @ID           updatePartnerRelationship
// @Summary      Patch relationship
// @Description  Update only the relationship fields present in the body
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.RelationshipRequest true "Relationship fields"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id}/relationship [patch]
func (h *PartnerHandler) UpdateRelationship(c *gin.Context) {
	var req partnerapp.RelationshipRequest
	set, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	h.respondPatch(c)(h.service.UpdateRelationship(c.Request.Context(), c.Param("id"), req, set))
}

// UpdateFinancialEstimation handles PATCH /partners/:id/financial-estimation
//
// @ID           updatePartnerFinancialEstimation
// @Summary      Patch financial estimation
// @Description  Update only the financial estimation fields present in the body
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.FinancialEstimationRequest true "Financial estimation fields"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id}/financial-estimation [patch]
func (h *PartnerHandler) UpdateFinancialEstimation(c *gin.Context) {
	var req partnerapp.FinancialEstimationRequest
	set, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	h.respondPatch(c)(h.service.UpdateFinancialEstimation(c.Request.Context(), c.Param("id"), req, set))
}

// UpdateAnalysis handles PATCH /partners/:id/analysis
//
// @ID           updatePartnerAnalysis
// @Summary      Patch analysis
// @Description  Update only the analysis fields present in the body
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.AnalysisRequest true "Analysis fields"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id}/analysis [patch]
func (h *PartnerHandler) UpdateAnalysis(c *gin.Context) {
	var req partnerapp.AnalysisRequest
	set, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	h.respondPatch(c)(h.service.UpdateAnalysis(c.Request.Context(), c.Param("id"), req, set))
}

// UpdateAcquisition handles PATCH /partners/:id/acquisition
//
// @ID           updatePartnerAcquisition
// @Summary      Patch acquisition
// @Description  Update only the acquisition fields present in the body
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.AcquisitionRequest true "Acquisition fields"
// @Success      200 {object} dto.Envelope{data=partnerapp.PartnerResponse}
// @Failure      400 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id}/acquisition [patch]
func (h *PartnerHandler) UpdateAcquisition(c *gin.Context) {
	var req partnerapp.AcquisitionRequest
	set, ok := h.bindPatch(c, &req)
	if !ok {
		return
	}
	h.respondPatch(c)(h.service.UpdateAcquisition(c.Request.Context(), c.Param("id"), req, set))
}

// Delete handles DELETE /partners/:id
//
// @ID           deletePartner
// @Summary      Delete a partner
// @Description  Soft delete a partner; a second delete reports not found
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} dto.Envelope
// @Failure      404 {object} dto.Envelope
// @Failure      500 {object} dto.Envelope
// @Router       /partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, MsgDeleted, true)
}

// Paginated sends one page of partners with its pagination block
func (h *PartnerHandler) Paginated(c *gin.Context, message string, page *partnerapp.PartnerPage) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page, message, http.StatusOK))
}

// bindPatch binds a section patch body into req and returns the top-level
// JSON keys the client sent. Keys that are present with a null value are
// included, which is how a field is cleared.
func (h *PartnerHandler) bindPatch(c *gin.Context, req any) ([]string, bool) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		h.HandleBindError(c, err)
		return nil, false
	}

	var fields map[string]json.RawMessage
	if body, ok := c.Get(gin.BodyBytesKey); ok {
		if err := json.Unmarshal(body.([]byte), &fields); err != nil {
			h.BadRequest(c, "Request body must be a JSON object")
			return nil, false
		}
	}

	set := make([]string, 0, len(fields))
	for name := range fields {
		set = append(set, name)
	}
	slices.Sort(set)
	return set, true
}

func (h *PartnerHandler) respondPatch(c *gin.Context) func(*partnerapp.PartnerResponse, error) {
	return func(updated *partnerapp.PartnerResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, http.StatusOK, MsgUpdated, updated)
	}
}

// actor returns the X-User-ID header, or the manual entry marker when absent
func actor(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(middleware.ActorHeader)); id != "" {
		return id
	}
	return partner.CreatedByManual
}
