package partner

import "slices"

// BusinessType classifies what kind of furniture business the partner runs
type BusinessType string

const (
	BusinessTypeShowroom     BusinessType = "furniture_showroom"
	BusinessTypeManufacturer BusinessType = "furniture_manufacturer"
	BusinessTypeDistributor  BusinessType = "furniture_distributor"
)

// SocialPlatform is a messaging or social network a partner can be reached on
type SocialPlatform string

const (
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformTelegram  SocialPlatform = "telegram"
	SocialPlatformWhatsapp  SocialPlatform = "whatsapp"
	SocialPlatformWebsite   SocialPlatform = "website"
	SocialPlatformRubika    SocialPlatform = "rubika"
	SocialPlatformBale      SocialPlatform = "bale"
	SocialPlatformEitaa     SocialPlatform = "eitaa"
	SocialPlatformOther     SocialPlatform = "other"
)

// PartnershipStatus tells whether we worked, work, or plan to work with the partner
type PartnershipStatus string

const (
	PartnershipStatusPast    PartnershipStatus = "past"
	PartnershipStatusPresent PartnershipStatus = "present"
	PartnershipStatusFuture  PartnershipStatus = "future"
)

// RelationshipLevel describes how engaged the partner is
type RelationshipLevel string

const (
	RelationshipLevelEngaged     RelationshipLevel = "engaged"
	RelationshipLevelNormal      RelationshipLevel = "normal"
	RelationshipLevelIndifferent RelationshipLevel = "indifferent"
)

// Satisfaction is the partner's satisfaction with us
type Satisfaction string

const (
	SatisfactionSatisfied    Satisfaction = "satisfied"
	SatisfactionNeutral      Satisfaction = "neutral"
	SatisfactionDissatisfied Satisfaction = "dissatisfied"
)

// CreditStatus is the partner's payment reliability
type CreditStatus string

const (
	CreditStatusGood   CreditStatus = "good"
	CreditStatusNormal CreditStatus = "normal"
	CreditStatusBad    CreditStatus = "bad"
)

// PaymentType is an accepted way of settling invoices
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeCheque PaymentType = "cheque"
	PaymentTypeCredit PaymentType = "credit"
)

// Sensitivity is what the partner cares about most when buying
type Sensitivity string

const (
	SensitivityPrice   Sensitivity = "price"
	SensitivityQuality Sensitivity = "quality"
	SensitivitySpeed   Sensitivity = "speed"
	SensitivityBrand   Sensitivity = "brand"
	SensitivityOther   Sensitivity = "other"
)

// FunnelStage is the sales-pipeline position of a partner
type FunnelStage string

const (
	FunnelStageProspect  FunnelStage = "prospect"
	FunnelStageLead      FunnelStage = "lead"
	FunnelStageQualified FunnelStage = "qualified"
	FunnelStageCustomer  FunnelStage = "customer"
	FunnelStageChurned   FunnelStage = "churned"
)

// Level is a low/medium/high grade, used for potential and purchase readiness
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// FinancialLevel grades the partner's financial strength
type FinancialLevel string

const (
	FinancialLevelStrong FinancialLevel = "strong"
	FinancialLevelMedium FinancialLevel = "medium"
	FinancialLevelWeak   FinancialLevel = "weak"
)

// AcquisitionSource is how the partner was found
type AcquisitionSource string

const (
	AcquisitionSourceMarketing   AcquisitionSource = "marketing"
	AcquisitionSourceSelfSearch  AcquisitionSource = "self_search"
	AcquisitionSourceReferral    AcquisitionSource = "referral"
	AcquisitionSourceInstagram   AcquisitionSource = "instagram"
	AcquisitionSourceGoogle      AcquisitionSource = "google"
	AcquisitionSourceAdvertising AcquisitionSource = "advertising"
	AcquisitionSourceOther       AcquisitionSource = "other"
)

var (
	businessTypes      = []BusinessType{BusinessTypeShowroom, BusinessTypeManufacturer, BusinessTypeDistributor}
	socialPlatforms    = []SocialPlatform{SocialPlatformInstagram, SocialPlatformTelegram, SocialPlatformWhatsapp, SocialPlatformWebsite, SocialPlatformRubika, SocialPlatformBale, SocialPlatformEitaa, SocialPlatformOther}
	partnershipStatus  = []PartnershipStatus{PartnershipStatusPast, PartnershipStatusPresent, PartnershipStatusFuture}
	relationshipLevels = []RelationshipLevel{RelationshipLevelEngaged, RelationshipLevelNormal, RelationshipLevelIndifferent}
	satisfactions      = []Satisfaction{SatisfactionSatisfied, SatisfactionNeutral, SatisfactionDissatisfied}
	creditStatuses     = []CreditStatus{CreditStatusGood, CreditStatusNormal, CreditStatusBad}
	paymentTypes       = []PaymentType{PaymentTypeCash, PaymentTypeCheque, PaymentTypeCredit}
	sensitivities      = []Sensitivity{SensitivityPrice, SensitivityQuality, SensitivitySpeed, SensitivityBrand, SensitivityOther}
	funnelStages       = []FunnelStage{FunnelStageProspect, FunnelStageLead, FunnelStageQualified, FunnelStageCustomer, FunnelStageChurned}
	levels             = []Level{LevelLow, LevelMedium, LevelHigh}
	financialLevels    = []FinancialLevel{FinancialLevelStrong, FinancialLevelMedium, FinancialLevelWeak}
	acquisitionSources = []AcquisitionSource{AcquisitionSourceMarketing, AcquisitionSourceSelfSearch, AcquisitionSourceReferral, AcquisitionSourceInstagram, AcquisitionSourceGoogle, AcquisitionSourceAdvertising, AcquisitionSourceOther}
)

func (v BusinessType) IsValid() bool      { return slices.Contains(businessTypes, v) }
func (v SocialPlatform) IsValid() bool    { return slices.Contains(socialPlatforms, v) }
func (v PartnershipStatus) IsValid() bool { return slices.Contains(partnershipStatus, v) }
func (v RelationshipLevel) IsValid() bool { return slices.Contains(relationshipLevels, v) }
func (v Satisfaction) IsValid() bool      { return slices.Contains(satisfactions, v) }
func (v CreditStatus) IsValid() bool      { return slices.Contains(creditStatuses, v) }
func (v PaymentType) IsValid() bool       { return slices.Contains(paymentTypes, v) }
func (v Sensitivity) IsValid() bool       { return slices.Contains(sensitivities, v) }
func (v FunnelStage) IsValid() bool       { return slices.Contains(funnelStages, v) }
func (v Level) IsValid() bool             { return slices.Contains(levels, v) }
func (v FinancialLevel) IsValid() bool    { return slices.Contains(financialLevels, v) }
func (v AcquisitionSource) IsValid() bool { return slices.Contains(acquisitionSources, v) }

type validatable interface {
	comparable
	IsValid() bool
}

// validOptional accepts a nil pointer or a pointer to a known value
func validOptional[T validatable](v *T) bool {
	return v == nil || (*v).IsValid()
}
