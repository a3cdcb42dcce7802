package router

import "github.com/crm/backend/internal/interfaces/http/handler"

// PartnerRoutes declares the /partners endpoints
func PartnerRoutes(h *handler.PartnerHandler) *DomainGroup {
	g := NewDomainGroup("partner", "/partners")
	g.POST("", h.Create)
	g.POST("/quick-entry", h.QuickEntry)
	g.GET("", h.List)
	g.GET("/search", h.SearchRedirect)
	g.GET("/search/", h.Search)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Replace)
	g.PATCH("/:id/identity", h.UpdateIdentity)
	g.PATCH("/:id/relationship", h.UpdateRelationship)
	g.PATCH("/:id/analysis", h.UpdateAnalysis)
	g.PATCH("/:id/financial-estimation", h.UpdateFinancialEstimation)
	g.PATCH("/:id/acquisition", h.UpdateAcquisition)
	g.DELETE("/:id", h.Delete)
	return g
}

// HealthRoutes declares the health endpoint
func HealthRoutes(h *handler.HealthHandler) *DomainGroup {
	return NewDomainGroup("health", "").GET("/health", h.Check)
}
