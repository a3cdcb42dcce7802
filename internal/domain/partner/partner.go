package partner

import (
	"slices"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default actor recorded in meta.created_by when the caller does not identify itself
const (
	CreatedByManual     = "manual"
	CreatedByQuickEntry = "quick_entry"
)

// ContactNumber is a labelled phone number
type ContactNumber struct {
	Label  *string `json:"label"`
	Number *string `json:"number"`
}

// SocialLink points at the partner's page on a platform
type SocialLink struct {
	Platform *SocialPlatform `json:"platform"`
	URL      *string         `json:"url"`
}

// GeoLocation is a WGS84 coordinate pair
type GeoLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Identity holds who the partner is and how to reach them
type Identity struct {
	BrandName       string          `json:"brand_name"`
	ManagerFullName *string         `json:"manager_full_name"`
	BusinessType    *BusinessType   `json:"business_type"`
	Category        *string         `json:"category"`
	SubCategory     *string         `json:"sub_category"`
	ContactNumbers  []ContactNumber `json:"contact_numbers"`
	SocialLinks     []SocialLink    `json:"social_links"`
	Province        *string         `json:"province"`
	City            *string         `json:"city"`
	MapLink         *string         `json:"map_link"`
	FullAddress     *string         `json:"full_address"`
	Location        *GeoLocation    `json:"location"`
}

// Relationship captures the state of our business relationship
type Relationship struct {
	PartnershipStatus         *PartnershipStatus `json:"partnership_status"`
	CustomerRelationshipLevel *RelationshipLevel `json:"customer_relationship_level"`
	CustomerSatisfaction      *Satisfaction      `json:"customer_satisfaction"`
	CreditStatus              *CreditStatus      `json:"credit_status"`
	PaymentTypes              []PaymentType      `json:"payment_types"`
	Sensitivity               *Sensitivity       `json:"sensitivity"`
	PreferredChannel          *SocialPlatform    `json:"preferred_channel"`
	Notes                     *string            `json:"notes"`
}

// FinancialEstimation holds rough, non-authoritative transaction figures
type FinancialEstimation struct {
	FirstTransactionDate            *string          `json:"first_transaction_date"`
	FirstTransactionAmountEstimated *decimal.Decimal `json:"first_transaction_amount_estimated"`
	LastTransactionDate             *string          `json:"last_transaction_date"`
	LastTransactionAmountEstimated  *decimal.Decimal `json:"last_transaction_amount_estimated"`
	TotalTransactionAmountEstimated *decimal.Decimal `json:"total_transaction_amount_estimated"`
	TransactionCountEstimated       *int             `json:"transaction_count_estimated"`
	AvgTransactionValueEstimated    *decimal.Decimal `json:"avg_transaction_value_estimated"`
	EstimationNote                  *string          `json:"estimation_note"`
}

// Analysis is the sales team's assessment of the partner
type Analysis struct {
	FunnelStage       *FunnelStage    `json:"funnel_stage"`
	PotentialLevel    *Level          `json:"potential_level"`
	FinancialLevel    *FinancialLevel `json:"financial_level"`
	PurchaseReadiness *Level          `json:"purchase_readiness"`
	Tags              []string        `json:"tags"`
}

// Acquisition records how the partner was found
type Acquisition struct {
	Source     *AcquisitionSource `json:"source"`
	SourceNote *string            `json:"source_note"`
}

// Meta is bookkeeping owned by the system, never by clients
type Meta struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy string     `json:"created_by"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// Partner is the aggregate root of the CRM: a business we sell to or may sell to.
// The ID is assigned by the store on insert.
type Partner struct {
	ID                  uuid.UUID           `json:"id"`
	Identity            Identity            `json:"identity"`
	Relationship        Relationship        `json:"relationship"`
	FinancialEstimation FinancialEstimation `json:"financial_estimation"`
	Analysis            Analysis            `json:"analysis"`
	Acquisition         Acquisition         `json:"acquisition"`
	Meta                Meta                `json:"meta"`
}

// NewPartner creates a partner from its identity with every other section defaulted
func NewPartner(identity Identity, createdBy string) (*Partner, error) {
	identity = identity.Normalized()
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	if createdBy == "" {
		createdBy = CreatedByManual
	}

	now := time.Now().UTC()
	p := &Partner{
		Identity: identity,
		Relationship: Relationship{
			PaymentTypes: []PaymentType{},
		},
		Meta: Meta{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: createdBy,
		},
	}
	p.applyDefaults()
	return p, nil
}

// SetRelationship replaces the relationship section
func (p *Partner) SetRelationship(r Relationship) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.Notes = normalizeOptional(r.Notes)
	if r.PaymentTypes == nil {
		r.PaymentTypes = []PaymentType{}
	}
	p.Relationship = r
	return nil
}

// SetFinancialEstimation replaces the financial estimation section
func (p *Partner) SetFinancialEstimation(f FinancialEstimation) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.AvgTransactionValueEstimated == nil {
		f.AvgTransactionValueEstimated = f.DerivedAverage()
	}
	f.EstimationNote = normalizeOptional(f.EstimationNote)
	p.FinancialEstimation = f
	return nil
}

// SetAnalysis replaces the analysis section. An unset funnel stage falls back to prospect.
func (p *Partner) SetAnalysis(a Analysis) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.Tags = normalizeTags(a.Tags)
	p.Analysis = a
	p.applyDefaults()
	return nil
}

// SetAcquisition replaces the acquisition section
func (p *Partner) SetAcquisition(a Acquisition) error {
	if !validOptional(a.Source) {
		return shared.NewDomainError("INVALID_INPUT", "Invalid acquisition source")
	}
	a.SourceNote = normalizeOptional(a.SourceNote)
	p.Acquisition = a
	return nil
}

// IsDeleted reports whether the partner has been soft deleted
func (p *Partner) IsDeleted() bool {
	return p.Meta.IsDeleted
}

func (p *Partner) applyDefaults() {
	if p.Analysis.FunnelStage == nil {
		stage := FunnelStageProspect
		p.Analysis.FunnelStage = &stage
	}
	if p.Identity.ContactNumbers == nil {
		p.Identity.ContactNumbers = []ContactNumber{}
	}
	if p.Identity.SocialLinks == nil {
		p.Identity.SocialLinks = []SocialLink{}
	}
}

// Normalized returns a copy with free text trimmed and Persian letters unified
func (i Identity) Normalized() Identity {
	i.BrandName = NormalizeText(i.BrandName)
	i.ManagerFullName = normalizeOptional(i.ManagerFullName)
	i.Category = normalizeOptional(i.Category)
	i.SubCategory = normalizeOptional(i.SubCategory)
	i.Province = normalizeOptional(i.Province)
	i.City = normalizeOptional(i.City)
	i.MapLink = normalizeOptional(i.MapLink)
	i.FullAddress = normalizeOptional(i.FullAddress)
	i.ContactNumbers = slices.Clone(i.ContactNumbers)
	for idx := range i.ContactNumbers {
		i.ContactNumbers[idx].Label = normalizeOptional(i.ContactNumbers[idx].Label)
		i.ContactNumbers[idx].Number = normalizeOptional(i.ContactNumbers[idx].Number)
	}
	return i
}

// Validate checks the identity invariants
func (i Identity) Validate() error {
	if i.BrandName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Brand name cannot be empty")
	}
	if len([]rune(i.BrandName)) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Brand name cannot exceed 200 characters")
	}
	if !validOptional(i.BusinessType) {
		return shared.NewDomainError("INVALID_INPUT", "Invalid business type")
	}
	for _, link := range i.SocialLinks {
		if !validOptional(link.Platform) {
			return shared.NewDomainError("INVALID_INPUT", "Invalid social platform")
		}
	}
	if loc := i.Location; loc != nil {
		if loc.Latitude != nil && (*loc.Latitude < -90 || *loc.Latitude > 90) {
			return shared.NewDomainError("INVALID_INPUT", "Latitude must be between -90 and 90")
		}
		if loc.Longitude != nil && (*loc.Longitude < -180 || *loc.Longitude > 180) {
			return shared.NewDomainError("INVALID_INPUT", "Longitude must be between -180 and 180")
		}
	}
	return nil
}

// Validate checks enum membership of the relationship section
func (r Relationship) Validate() error {
	switch {
	case !validOptional(r.PartnershipStatus):
		return shared.NewDomainError("INVALID_INPUT", "Invalid partnership status")
	case !validOptional(r.CustomerRelationshipLevel):
		return shared.NewDomainError("INVALID_INPUT", "Invalid relationship level")
	case !validOptional(r.CustomerSatisfaction):
		return shared.NewDomainError("INVALID_INPUT", "Invalid customer satisfaction")
	case !validOptional(r.CreditStatus):
		return shared.NewDomainError("INVALID_INPUT", "Invalid credit status")
	case !validOptional(r.Sensitivity):
		return shared.NewDomainError("INVALID_INPUT", "Invalid sensitivity")
	case !validOptional(r.PreferredChannel):
		return shared.NewDomainError("INVALID_INPUT", "Invalid preferred channel")
	}
	for _, pt := range r.PaymentTypes {
		if !pt.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", "Invalid payment type")
		}
	}
	return nil
}

// Validate rejects negative estimates
func (f FinancialEstimation) Validate() error {
	for _, amount := range []*decimal.Decimal{
		f.FirstTransactionAmountEstimated,
		f.LastTransactionAmountEstimated,
		f.TotalTransactionAmountEstimated,
		f.AvgTransactionValueEstimated,
	} {
		if amount != nil && amount.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Estimated amounts cannot be negative")
		}
	}
	if f.TransactionCountEstimated != nil && *f.TransactionCountEstimated < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Transaction count cannot be negative")
	}
	return nil
}

// DerivedAverage returns total / count when both are known and count is positive
func (f FinancialEstimation) DerivedAverage() *decimal.Decimal {
	return deriveAverage(f.TotalTransactionAmountEstimated, f.TransactionCountEstimated)
}

func deriveAverage(total *decimal.Decimal, count *int) *decimal.Decimal {
	if total == nil || count == nil || *count <= 0 {
		return nil
	}
	avg := total.Div(decimal.NewFromInt(int64(*count)))
	return &avg
}

// Validate checks enum membership of the analysis section
func (a Analysis) Validate() error {
	switch {
	case !validOptional(a.FunnelStage):
		return shared.NewDomainError("INVALID_INPUT", "Invalid funnel stage")
	case !validOptional(a.PotentialLevel):
		return shared.NewDomainError("INVALID_INPUT", "Invalid potential level")
	case !validOptional(a.FinancialLevel):
		return shared.NewDomainError("INVALID_INPUT", "Invalid financial level")
	case !validOptional(a.PurchaseReadiness):
		return shared.NewDomainError("INVALID_INPUT", "Invalid purchase readiness")
	}
	return nil
}
