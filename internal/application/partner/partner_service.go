package partner

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/telemetry"
)

const serviceName = "partner"

// PartnerService handles partner-related business operations
type PartnerService struct {
	repo partner.Repository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(repo partner.Repository) *PartnerService {
	return &PartnerService{
		repo: repo,
	}
}

// Create creates a partner from a full document. An empty actor is recorded as "manual".
func (s *PartnerService) Create(ctx context.Context, actor string, req PartnerRequest) (*PartnerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "create")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrActor, actor)

	p, err := buildPartner(req, actor)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrPartnerID, created.ID.String())

	response := ToPartnerResponse(created)
	return &response, nil
}

// QuickEntry creates a partner from the short field-visit form
func (s *PartnerService) QuickEntry(ctx context.Context, req QuickEntryRequest) (*PartnerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "quick_entry")
	defer span.End()

	identity := IdentityRequest{
		BrandName:       req.BrandName,
		ManagerFullName: req.ManagerFullName,
		BusinessType:    req.BusinessType,
		ContactNumbers:  req.ContactNumbers,
		Province:        req.Province,
		City:            req.City,
		Location:        req.Location,
	}
	p, err := partner.NewPartner(identity.ToDomain(), partner.CreatedByQuickEntry)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.Notes != nil {
		if err := p.SetRelationship(partner.Relationship{Notes: req.Notes}); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrPartnerID, created.ID.String())

	response := ToPartnerResponse(created)
	return &response, nil
}

// GetByID retrieves a partner by ID. Soft-deleted partners are returned as well.
func (s *PartnerService) GetByID(ctx context.Context, id string) (*PartnerResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	response := ToPartnerResponse(p)
	return &response, nil
}

// List retrieves one page of live partners matching the request filters
func (s *PartnerService) List(ctx context.Context, req ListPartnersRequest) (*PartnerPage, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "list")
	defer span.End()

	query := req.Query()
	partners, total, err := s.repo.List(ctx, query.Filters(), query.Page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, total)

	page := shared.NewPaginated(ToPartnerResponses(partners), total, query.Page)
	return &page, nil
}

// Search ranks live partners by relevance to the query text
func (s *PartnerService) Search(ctx context.Context, req SearchPartnersRequest) (*PartnerPage, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "search")
	defer span.End()

	query := req.Query()
	terms := query.Terms()
	telemetry.SetAttribute(span, telemetry.SpanAttrSearchTerms, terms)

	partners, total, err := s.repo.Search(ctx, terms, query.Filters(), query.Page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, total)

	page := shared.NewPaginated(ToPartnerResponses(partners), total, query.Page)
	return &page, nil
}

// Replace overwrites every document section of a partner
func (s *PartnerService) Replace(ctx context.Context, id string, req PartnerRequest) (*PartnerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "replace")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPartnerID, id)

	p, err := buildPartner(req, "")
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, p)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, translateNotFound(err)
	}
	response := ToPartnerResponse(updated)
	return &response, nil
}

// UpdateIdentity patches the identity section. Only the JSON fields named in set are written.
func (s *PartnerService) UpdateIdentity(ctx context.Context, id string, req IdentityRequest, set []string) (*PartnerResponse, error) {
	identity := req.ToDomain().Normalized()
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, partner.SectionIdentity, identity, set, nil)
}

// UpdateRelationship patches the relationship section
func (s *PartnerService) UpdateRelationship(ctx context.Context, id string, req RelationshipRequest, set []string) (*PartnerResponse, error) {
	relationship := req.ToDomain()
	if err := relationship.Validate(); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, partner.SectionRelationship, relationship, set, nil)
}

// UpdateFinancialEstimation patches the financial estimation section. When the patch
// changes the total or the count but not the average, the average is derived from the
// patched values, falling back to the stored ones for the side that was not sent.
func (s *PartnerService) UpdateFinancialEstimation(ctx context.Context, id string, req FinancialEstimationRequest, set []string) (*PartnerResponse, error) {
	estimation := req.ToDomain()
	if err := estimation.Validate(); err != nil {
		return nil, err
	}

	section := partner.SectionFinancialEstimation
	totalPath := section.Path("total_transaction_amount_estimated")
	countPath := section.Path("transaction_count_estimated")
	avgPath := section.Path("avg_transaction_value_estimated")

	fields, err := partner.FlattenUpdate(section, estimation, set)
	if err != nil {
		return nil, err
	}
	if !fields.Has(avgPath) && (fields.Has(totalPath) != fields.Has(countPath)) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, translateNotFound(err)
		}
		stored := existing.FinancialEstimation
		if !fields.Has(totalPath) {
			estimation.TotalTransactionAmountEstimated = stored.TotalTransactionAmountEstimated
		}
		if !fields.Has(countPath) {
			estimation.TransactionCountEstimated = stored.TransactionCountEstimated
		}
	}

	derive := func(fields partner.Fields) {
		if fields.Has(avgPath) || (!fields.Has(totalPath) && !fields.Has(countPath)) {
			return
		}
		if avg := estimation.DerivedAverage(); avg != nil {
			fields[avgPath] = avg
		}
	}
	return s.patch(ctx, id, section, estimation, set, derive)
}

// UpdateAnalysis patches the analysis section
func (s *PartnerService) UpdateAnalysis(ctx context.Context, id string, req AnalysisRequest, set []string) (*PartnerResponse, error) {
	analysis := req.ToDomain()
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, partner.SectionAnalysis, analysis, set, nil)
}

// UpdateAcquisition patches the acquisition section
func (s *PartnerService) UpdateAcquisition(ctx context.Context, id string, req AcquisitionRequest, set []string) (*PartnerResponse, error) {
	acquisition := req.ToDomain()
	probe := &partner.Partner{}
	if err := probe.SetAcquisition(acquisition); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, partner.SectionAcquisition, acquisition, set, nil)
}

// Delete soft deletes a partner. Deleting a partner twice reports ErrAlreadyDeleted.
func (s *PartnerService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPartnerID, id)

	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if deleted {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateNotFound(err)
	}
	if existing.IsDeleted() {
		return partner.ErrAlreadyDeleted
	}
	return partner.ErrPartnerNotFound
}

// patch flattens the fields named in set and writes them in place.
// adjust may add derived assignments before the write.
func (s *PartnerService) patch(ctx context.Context, id string, section partner.Section, payload any, set []string, adjust func(partner.Fields)) (*PartnerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "update_"+string(section))
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPartnerID, id,
		telemetry.SpanAttrSection, string(section),
	)

	fields, err := partner.FlattenUpdate(section, payload, set)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if adjust != nil {
		adjust(fields)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, translateNotFound(err)
	}
	response := ToPartnerResponse(updated)
	return &response, nil
}

// buildPartner assembles a validated partner from a full document
func buildPartner(req PartnerRequest, actor string) (*partner.Partner, error) {
	p, err := partner.NewPartner(req.Identity.ToDomain(), actor)
	if err != nil {
		return nil, err
	}
	if req.Relationship != nil {
		if err := p.SetRelationship(req.Relationship.ToDomain()); err != nil {
			return nil, err
		}
	}
	if req.FinancialEstimation != nil {
		if err := p.SetFinancialEstimation(req.FinancialEstimation.ToDomain()); err != nil {
			return nil, err
		}
	}
	if req.Analysis != nil {
		if err := p.SetAnalysis(req.Analysis.ToDomain()); err != nil {
			return nil, err
		}
	}
	if req.Acquisition != nil {
		if err := p.SetAcquisition(req.Acquisition.ToDomain()); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return partner.ErrPartnerNotFound
	}
	return err
}
