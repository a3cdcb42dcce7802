package partner

import (
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Section requests
// =============================================================================

// ContactNumberRequest is a labelled phone number
type ContactNumberRequest struct {
	Label  *string `json:"label" binding:"omitempty,max=50"`
	Number *string `json:"number" binding:"omitempty,max=30"`
}

// SocialLinkRequest is a link to the partner on a platform
type SocialLinkRequest struct {
	Platform *partner.SocialPlatform `json:"platform" binding:"omitempty,oneof=instagram telegram whatsapp website rubika bale eitaa other"`
	URL      *string                 `json:"url" binding:"omitempty,max=500"`
}

// LocationRequest is a latitude/longitude pair
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// IdentityRequest carries the identity section. It is also the identity patch
// payload, so brand_name can never be blanked by a patch.
type IdentityRequest struct {
	BrandName       string                 `json:"brand_name" binding:"required,max=200"`
	ManagerFullName *string                `json:"manager_full_name" binding:"omitempty,max=200"`
	BusinessType    *partner.BusinessType  `json:"business_type" binding:"omitempty,oneof=furniture_showroom furniture_manufacturer furniture_distributor"`
	Category        *string                `json:"category" binding:"omitempty,max=100"`
	SubCategory     *string                `json:"sub_category" binding:"omitempty,max=100"`
	ContactNumbers  []ContactNumberRequest `json:"contact_numbers" binding:"omitempty,max=20,dive"`
	SocialLinks     []SocialLinkRequest    `json:"social_links" binding:"omitempty,max=20,dive"`
	Province        *string                `json:"province" binding:"omitempty,max=100"`
	City            *string                `json:"city" binding:"omitempty,max=100"`
	MapLink         *string                `json:"map_link" binding:"omitempty,max=1000"`
	FullAddress     *string                `json:"full_address" binding:"omitempty,max=1000"`
	Location        *LocationRequest       `json:"location"`
}

// RelationshipRequest carries the relationship section
type RelationshipRequest struct {
	PartnershipStatus         *partner.PartnershipStatus `json:"partnership_status" binding:"omitempty,oneof=past present future"`
	CustomerRelationshipLevel *partner.RelationshipLevel `json:"customer_relationship_level" binding:"omitempty,oneof=engaged normal indifferent"`
	CustomerSatisfaction      *partner.Satisfaction      `json:"customer_satisfaction" binding:"omitempty,oneof=satisfied neutral dissatisfied"`
	CreditStatus              *partner.CreditStatus      `json:"credit_status" binding:"omitempty,oneof=good normal bad"`
	PaymentTypes              []partner.PaymentType      `json:"payment_types" binding:"omitempty,max=3,dive,oneof=cash cheque credit"`
	Sensitivity               *partner.Sensitivity       `json:"sensitivity" binding:"omitempty,oneof=price quality speed brand other"`
	PreferredChannel          *partner.SocialPlatform    `json:"preferred_channel" binding:"omitempty,oneof=instagram telegram whatsapp website rubika bale eitaa other"`
	Notes                     *string                    `json:"notes" binding:"omitempty,max=5000"`
}

// FinancialEstimationRequest carries the financial estimation section
type FinancialEstimationRequest struct {
	FirstTransactionDate            *string          `json:"first_transaction_date" binding:"omitempty,datetime=2006-01-02"`
	FirstTransactionAmountEstimated *decimal.Decimal `json:"first_transaction_amount_estimated"`
	LastTransactionDate             *string          `json:"last_transaction_date" binding:"omitempty,datetime=2006-01-02"`
	LastTransactionAmountEstimated  *decimal.Decimal `json:"last_transaction_amount_estimated"`
	TotalTransactionAmountEstimated *decimal.Decimal `json:"total_transaction_amount_estimated"`
	TransactionCountEstimated       *int             `json:"transaction_count_estimated" binding:"omitempty,min=0"`
	AvgTransactionValueEstimated    *decimal.Decimal `json:"avg_transaction_value_estimated"`
	EstimationNote                  *string          `json:"estimation_note" binding:"omitempty,max=2000"`
}

// AnalysisRequest carries the analysis section
type AnalysisRequest struct {
	FunnelStage       *partner.FunnelStage    `json:"funnel_stage" binding:"omitempty,oneof=prospect lead qualified customer churned"`
	PotentialLevel    *partner.Level          `json:"potential_level" binding:"omitempty,oneof=low medium high"`
	FinancialLevel    *partner.FinancialLevel `json:"financial_level" binding:"omitempty,oneof=strong medium weak"`
	PurchaseReadiness *partner.Level          `json:"purchase_readiness" binding:"omitempty,oneof=low medium high"`
	Tags              []string                `json:"tags" binding:"omitempty,max=50,dive,max=50"`
}

// AcquisitionRequest carries the acquisition section
type AcquisitionRequest struct {
	Source     *partner.AcquisitionSource `json:"source" binding:"omitempty,oneof=marketing self_search referral instagram google advertising other"`
	SourceNote *string                    `json:"source_note" binding:"omitempty,max=2000"`
}

// =============================================================================
// Entity requests
// =============================================================================

// PartnerRequest is the full document, used to create or fully replace a partner.
// Omitted sections are stored empty.
type PartnerRequest struct {
	Identity            IdentityRequest             `json:"identity"`
	Relationship        *RelationshipRequest        `json:"relationship"`
	FinancialEstimation *FinancialEstimationRequest `json:"financial_estimation"`
	Analysis            *AnalysisRequest            `json:"analysis"`
	Acquisition         *AcquisitionRequest         `json:"acquisition"`
}

// QuickEntryRequest captures the handful of fields entered during a field visit
type QuickEntryRequest struct {
	BrandName       string                 `json:"brand_name" binding:"required,max=200"`
	ManagerFullName *string                `json:"manager_full_name" binding:"omitempty,max=200"`
	BusinessType    *partner.BusinessType  `json:"business_type" binding:"omitempty,oneof=furniture_showroom furniture_manufacturer furniture_distributor"`
	ContactNumbers  []ContactNumberRequest `json:"contact_numbers" binding:"omitempty,max=20,dive"`
	Province        *string                `json:"province" binding:"omitempty,max=100"`
	City            *string                `json:"city" binding:"omitempty,max=100"`
	Location        *LocationRequest       `json:"location"`
	Notes           *string                `json:"notes" binding:"omitempty,max=5000"`
}

// ListPartnersRequest holds the list endpoint query parameters
type ListPartnersRequest struct {
	FunnelStage       string `form:"funnel_stage" binding:"omitempty,oneof=prospect lead qualified customer churned"`
	BusinessType      string `form:"business_type" binding:"omitempty,oneof=furniture_showroom furniture_manufacturer furniture_distributor"`
	FinancialLevel    string `form:"financial_level" binding:"omitempty,oneof=strong medium weak"`
	PurchaseReadiness string `form:"purchase_readiness" binding:"omitempty,oneof=low medium high"`
	PotentialLevel    string `form:"potential_level" binding:"omitempty,oneof=low medium high"`
	Source            string `form:"source" binding:"omitempty,oneof=marketing self_search referral instagram google advertising other"`
	Province          string `form:"province" binding:"omitempty,max=100"`
	City              string `form:"city" binding:"omitempty,max=100"`
	MapLink           string `form:"map_link" binding:"omitempty,max=1000"`
	Tag               string `form:"tag" binding:"omitempty,max=50"`
	Page              int    `form:"page,default=1" binding:"min=1"`
	Limit             int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// Params returns the filter parameters keyed by their query names
func (r ListPartnersRequest) Params() map[string]string {
	return map[string]string{
		"funnel_stage":       r.FunnelStage,
		"business_type":      r.BusinessType,
		"financial_level":    r.FinancialLevel,
		"purchase_readiness": r.PurchaseReadiness,
		"potential_level":    r.PotentialLevel,
		"source":             r.Source,
		"province":           r.Province,
		"city":               r.City,
		"map_link":           r.MapLink,
		"tag":                r.Tag,
	}
}

// Query converts the request into a domain list query
func (r ListPartnersRequest) Query() partner.ListQuery {
	return partner.ListQuery{Params: r.Params(), Page: shared.NewPage(r.Page, r.Limit)}
}

// SearchPartnersRequest holds the search endpoint query parameters
type SearchPartnersRequest struct {
	Q              string `form:"q" binding:"omitempty,max=200"`
	FunnelStage    string `form:"funnel_stage" binding:"omitempty,oneof=prospect lead qualified customer churned"`
	BusinessType   string `form:"business_type" binding:"omitempty,oneof=furniture_showroom furniture_manufacturer furniture_distributor"`
	PotentialLevel string `form:"potential_level" binding:"omitempty,oneof=low medium high"`
	FinancialLevel string `form:"financial_level" binding:"omitempty,oneof=strong medium weak"`
	Province       string `form:"province" binding:"omitempty,max=100"`
	City           string `form:"city" binding:"omitempty,max=100"`
	Tag            string `form:"tag" binding:"omitempty,max=50"`
	Page           int    `form:"page,default=1" binding:"min=1"`
	Limit          int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// Query converts the request into a domain search query
func (r SearchPartnersRequest) Query() partner.SearchQuery {
	return partner.SearchQuery{
		Text: r.Q,
		Params: map[string]string{
			"funnel_stage":    r.FunnelStage,
			"business_type":   r.BusinessType,
			"potential_level": r.PotentialLevel,
			"financial_level": r.FinancialLevel,
			"province":        r.Province,
			"city":            r.City,
			"tag":             r.Tag,
		},
		Page: shared.NewPage(r.Page, r.Limit),
	}
}

// =============================================================================
// Request to domain
// =============================================================================

// ToDomain converts the request into the domain identity section
func (r IdentityRequest) ToDomain() partner.Identity {
	return partner.Identity{
		BrandName:       r.BrandName,
		ManagerFullName: r.ManagerFullName,
		BusinessType:    r.BusinessType,
		Category:        r.Category,
		SubCategory:     r.SubCategory,
		ContactNumbers:  toContactNumbers(r.ContactNumbers),
		SocialLinks:     toSocialLinks(r.SocialLinks),
		Province:        r.Province,
		City:            r.City,
		MapLink:         r.MapLink,
		FullAddress:     r.FullAddress,
		Location:        r.Location.toDomain(),
	}
}

// ToDomain converts the request into the domain relationship section
func (r RelationshipRequest) ToDomain() partner.Relationship {
	return partner.Relationship{
		PartnershipStatus:         r.PartnershipStatus,
		CustomerRelationshipLevel: r.CustomerRelationshipLevel,
		CustomerSatisfaction:      r.CustomerSatisfaction,
		CreditStatus:              r.CreditStatus,
		PaymentTypes:              r.PaymentTypes,
		Sensitivity:               r.Sensitivity,
		PreferredChannel:          r.PreferredChannel,
		Notes:                     r.Notes,
	}
}

// ToDomain converts the request into the domain financial estimation section
func (r FinancialEstimationRequest) ToDomain() partner.FinancialEstimation {
	return partner.FinancialEstimation{
		FirstTransactionDate:            r.FirstTransactionDate,
		FirstTransactionAmountEstimated: r.FirstTransactionAmountEstimated,
		LastTransactionDate:             r.LastTransactionDate,
		LastTransactionAmountEstimated:  r.LastTransactionAmountEstimated,
		TotalTransactionAmountEstimated: r.TotalTransactionAmountEstimated,
		TransactionCountEstimated:       r.TransactionCountEstimated,
		AvgTransactionValueEstimated:    r.AvgTransactionValueEstimated,
		EstimationNote:                  r.EstimationNote,
	}
}

// ToDomain converts the request into the domain analysis section
func (r AnalysisRequest) ToDomain() partner.Analysis {
	return partner.Analysis{
		FunnelStage:       r.FunnelStage,
		PotentialLevel:    r.PotentialLevel,
		FinancialLevel:    r.FinancialLevel,
		PurchaseReadiness: r.PurchaseReadiness,
		Tags:              r.Tags,
	}
}

// ToDomain converts the request into the domain acquisition section
func (r AcquisitionRequest) ToDomain() partner.Acquisition {
	return partner.Acquisition{
		Source:     r.Source,
		SourceNote: r.SourceNote,
	}
}

func (r *LocationRequest) toDomain() *partner.GeoLocation {
	if r == nil {
		return nil
	}
	return &partner.GeoLocation{Latitude: r.Latitude, Longitude: r.Longitude}
}

func toContactNumbers(in []ContactNumberRequest) []partner.ContactNumber {
	if in == nil {
		return nil
	}
	out := make([]partner.ContactNumber, len(in))
	for i, c := range in {
		out[i] = partner.ContactNumber{Label: c.Label, Number: c.Number}
	}
	return out
}

func toSocialLinks(in []SocialLinkRequest) []partner.SocialLink {
	if in == nil {
		return nil
	}
	out := make([]partner.SocialLink, len(in))
	for i, l := range in {
		out[i] = partner.SocialLink{Platform: l.Platform, URL: l.URL}
	}
	return out
}

// =============================================================================
// Responses
// =============================================================================

// FinancialEstimationResponse renders estimated amounts as JSON numbers
type FinancialEstimationResponse struct {
	FirstTransactionDate            *string  `json:"first_transaction_date"`
	FirstTransactionAmountEstimated *float64 `json:"first_transaction_amount_estimated"`
	LastTransactionDate             *string  `json:"last_transaction_date"`
	LastTransactionAmountEstimated  *float64 `json:"last_transaction_amount_estimated"`
	TotalTransactionAmountEstimated *float64 `json:"total_transaction_amount_estimated"`
	TransactionCountEstimated       *int     `json:"transaction_count_estimated"`
	AvgTransactionValueEstimated    *float64 `json:"avg_transaction_value_estimated"`
	EstimationNote                  *string  `json:"estimation_note"`
}

// MetaResponse is the system bookkeeping of a partner
type MetaResponse struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy string     `json:"created_by"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID                  uuid.UUID                   `json:"id"`
	Identity            partner.Identity            `json:"identity"`
	Relationship        partner.Relationship        `json:"relationship"`
	FinancialEstimation FinancialEstimationResponse `json:"financial_estimation"`
	Analysis            partner.Analysis            `json:"analysis"`
	Acquisition         partner.Acquisition         `json:"acquisition"`
	Meta                MetaResponse                `json:"meta"`
}

// PartnerPage is one page of partners with pagination totals
type PartnerPage = shared.Paginated[PartnerResponse]

// ToPartnerResponse converts a domain Partner to a response
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	f := p.FinancialEstimation
	return PartnerResponse{
		ID:           p.ID,
		Identity:     p.Identity,
		Relationship: p.Relationship,
		FinancialEstimation: FinancialEstimationResponse{
			FirstTransactionDate:            f.FirstTransactionDate,
			FirstTransactionAmountEstimated: toFloat(f.FirstTransactionAmountEstimated),
			LastTransactionDate:             f.LastTransactionDate,
			LastTransactionAmountEstimated:  toFloat(f.LastTransactionAmountEstimated),
			TotalTransactionAmountEstimated: toFloat(f.TotalTransactionAmountEstimated),
			TransactionCountEstimated:       f.TransactionCountEstimated,
			AvgTransactionValueEstimated:    toFloat(f.AvgTransactionValueEstimated),
			EstimationNote:                  f.EstimationNote,
		},
		Analysis:    p.Analysis,
		Acquisition: p.Acquisition,
		Meta: MetaResponse{
			CreatedAt: p.Meta.CreatedAt,
			UpdatedAt: p.Meta.UpdatedAt,
			CreatedBy: p.Meta.CreatedBy,
			IsDeleted: p.Meta.IsDeleted,
			DeletedAt: p.Meta.DeletedAt,
		},
	}
}

// ToPartnerResponses converts a slice of domain Partners to responses
func ToPartnerResponses(partners []partner.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, len(partners))
	for i := range partners {
		responses[i] = ToPartnerResponse(&partners[i])
	}
	return responses
}

func toFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
