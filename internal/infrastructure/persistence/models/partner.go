package models

import (
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PartnerColumns is the explicit projection used when reading partners.
// The generated search_vector column is never loaded.
var PartnerColumns = []string{
	"id",
	"identity",
	"relationship",
	"financial_estimation",
	"analysis",
	"acquisition",
	"created_at",
	"updated_at",
	"created_by",
	"is_deleted",
	"deleted_at",
}

// MetaColumns maps meta.* fields onto their plain columns
var MetaColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"created_by": "created_by",
	"is_deleted": "is_deleted",
	"deleted_at": "deleted_at",
}

// PartnerModel is the persistence model for the Partner aggregate.
// Every document section is a JSONB column; meta fields are plain columns.
type PartnerModel struct {
	ID                  uuid.UUID                                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identity            datatypes.JSONType[partner.Identity]            `gorm:"type:jsonb;not null"`
	Relationship        datatypes.JSONType[partner.Relationship]        `gorm:"type:jsonb;not null"`
	FinancialEstimation datatypes.JSONType[partner.FinancialEstimation] `gorm:"column:financial_estimation;type:jsonb;not null"`
	Analysis            datatypes.JSONType[partner.Analysis]            `gorm:"type:jsonb;not null"`
	Acquisition         datatypes.JSONType[partner.Acquisition]         `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time                                       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time                                       `gorm:"not null;autoUpdateTime:false"`
	CreatedBy           string                                          `gorm:"type:varchar(100);not null"`
	IsDeleted           bool                                            `gorm:"not null;default:false"`
	DeletedAt           *time.Time
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		ID:                  m.ID,
		Identity:            m.Identity.Data(),
		Relationship:        m.Relationship.Data(),
		FinancialEstimation: m.FinancialEstimation.Data(),
		Analysis:            m.Analysis.Data(),
		Acquisition:         m.Acquisition.Data(),
		Meta: partner.Meta{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			CreatedBy: m.CreatedBy,
			IsDeleted: m.IsDeleted,
			DeletedAt: m.DeletedAt,
		},
	}
}

// PartnerModelFromDomain creates a persistence model from a domain Partner
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	return &PartnerModel{
		ID:                  p.ID,
		Identity:            datatypes.NewJSONType(p.Identity),
		Relationship:        datatypes.NewJSONType(p.Relationship),
		FinancialEstimation: datatypes.NewJSONType(p.FinancialEstimation),
		Analysis:            datatypes.NewJSONType(p.Analysis),
		Acquisition:         datatypes.NewJSONType(p.Acquisition),
		CreatedAt:           p.Meta.CreatedAt,
		UpdatedAt:           p.Meta.UpdatedAt,
		CreatedBy:           p.Meta.CreatedBy,
		IsDeleted:           p.Meta.IsDeleted,
		DeletedAt:           p.Meta.DeletedAt,
	}
}

// SectionValues returns the document sections keyed by column, for full replacement
func (m *PartnerModel) SectionValues() map[string]any {
	return map[string]any{
		string(partner.SectionIdentity):            m.Identity,
		string(partner.SectionRelationship):        m.Relationship,
		string(partner.SectionFinancialEstimation): m.FinancialEstimation,
		string(partner.SectionAnalysis):            m.Analysis,
		string(partner.SectionAcquisition):         m.Acquisition,
	}
}
