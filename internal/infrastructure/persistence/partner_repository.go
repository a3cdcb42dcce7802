package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// GormPartnerRepository implements partner.Repository on a PostgreSQL partners table
// holding one JSONB column per document section.
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Create inserts the partner. The id is generated by the database and written back.
func (r *GormPartnerRepository) Create(ctx context.Context, p *partner.Partner) (*partner.Partner, error) {
	model := models.PartnerModelFromDomain(p)
	model.ID = uuid.Nil
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("insert partner: %w", err)
	}
	p.ID = model.ID
	return model.ToDomain(), nil
}

// FindByID finds a partner by its ID, including soft-deleted ones
func (r *GormPartnerRepository) FindByID(ctx context.Context, id string) (*partner.Partner, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Select(models.PartnerColumns).
		Where("id = ?", uid).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update applies dotted-path assignments in place. Sibling keys of each
// touched section, and untouched sections, keep their stored values.
func (r *GormPartnerRepository) Update(ctx context.Context, id string, fields partner.Fields) (*partner.Partner, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	if len(fields) == 0 {
		return nil, shared.ErrEmptyUpdate
	}

	assignments, err := buildAssignments(fields)
	if err != nil {
		return nil, err
	}
	if _, ok := assignments["updated_at"]; !ok {
		assignments["updated_at"] = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ?", uid).
		Updates(assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("update partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Replace overwrites all five document sections. Creation metadata is kept.
func (r *GormPartnerRepository) Replace(ctx context.Context, id string, p *partner.Partner) (*partner.Partner, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	values := models.PartnerModelFromDomain(p).SectionValues()
	values["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ?", uid).
		Updates(values)
	if result.Error != nil {
		return nil, fmt.Errorf("replace partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// List returns one page of partners matching every filter, newest first
func (r *GormPartnerRepository) List(ctx context.Context, filters partner.Filters, page shared.Page) ([]partner.Partner, int64, error) {
	return r.find(ctx, filters, page, nil, clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "created_at"}, Desc: true},
	}})
}

// Search ranks partners by full-text relevance to text, newest first among equals.
// Blank text falls back to List.
func (r *GormPartnerRepository) Search(ctx context.Context, text string, filters partner.Filters, page shared.Page) ([]partner.Partner, int64, error) {
	if text == "" {
		return r.List(ctx, filters, page)
	}

	match := clause.Expr{
		SQL:  "search_vector @@ plainto_tsquery('simple', ?)",
		Vars: []any{text},
	}
	rank := clause.OrderBy{Expression: clause.Expr{
		SQL:                "ts_rank(search_vector, plainto_tsquery('simple', ?)) DESC, created_at DESC",
		Vars:               []any{text},
		WithoutParentheses: true,
	}}
	return r.find(ctx, filters, page, &match, rank)
}

// SoftDelete flags a live partner as deleted. It reports whether exactly one row changed,
// so repeated calls return false.
func (r *GormPartnerRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	uid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ? AND is_deleted = ?", uid, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("soft delete partner: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// find counts and fetches a page. Each query is built from scratch so the
// count never inherits the page's ordering, offset or limit.
func (r *GormPartnerRepository) find(ctx context.Context, filters partner.Filters, page shared.Page, match *clause.Expr, order clause.Expression) ([]partner.Partner, int64, error) {
	scoped := func() (*gorm.DB, error) {
		query := r.db.WithContext(ctx).Model(&models.PartnerModel{})
		query, err := applyFilters(query, filters)
		if err != nil {
			return nil, err
		}
		if match != nil {
			query = query.Where(*match)
		}
		return query, nil
	}

	countQuery, err := scoped()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count partners: %w", err)
	}

	pageQuery, err := scoped()
	if err != nil {
		return nil, 0, err
	}
	var partnerModels []models.PartnerModel
	if err := pageQuery.
		Select(models.PartnerColumns).
		Clauses(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&partnerModels).Error; err != nil {
		return nil, 0, fmt.Errorf("list partners: %w", err)
	}

	partners := make([]partner.Partner, len(partnerModels))
	for i, model := range partnerModels {
		partners[i] = *model.ToDomain()
	}
	return partners, total, nil
}

// applyFilters adds one predicate per filter, sorted by path for stable SQL
func applyFilters(query *gorm.DB, filters partner.Filters) (*gorm.DB, error) {
	for _, path := range partner.Fields(filters).Paths() {
		value := filters[path]
		section, field, err := partner.SplitPath(path)
		if err != nil {
			return nil, err
		}
		if !fieldNamePattern.MatchString(field) {
			return nil, invalidField(path)
		}

		if section == partner.SectionMeta {
			column, ok := models.MetaColumns[field]
			if !ok {
				return nil, invalidField(path)
			}
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
			continue
		}

		if partner.IsArrayPath(path) {
			contains, err := json.Marshal([]any{value})
			if err != nil {
				return nil, err
			}
			query = query.Where(fmt.Sprintf("%s -> '%s' @> ?::jsonb", section, field), string(contains))
			continue
		}
		query = query.Where(fmt.Sprintf("%s ->> '%s' = ?", section, field), fmt.Sprint(value))
	}
	return query, nil
}

// buildAssignments turns dotted paths into column assignments. Every document
// section becomes a single chained jsonb_set expression. Field names are
// inlined into the path literal, so they must pass fieldNamePattern first.
func buildAssignments(fields partner.Fields) (map[string]any, error) {
	assignments := map[string]any{}
	exprs := map[partner.Section]string{}
	args := map[partner.Section][]any{}

	for _, path := range fields.Paths() {
		section, field, err := partner.SplitPath(path)
		if err != nil {
			return nil, err
		}
		if !fieldNamePattern.MatchString(field) {
			return nil, invalidField(path)
		}

		if section == partner.SectionMeta {
			column, ok := models.MetaColumns[field]
			if !ok {
				return nil, invalidField(path)
			}
			assignments[column] = fields[path]
			continue
		}

		raw, err := json.Marshal(fields[path])
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Cannot encode %s", path))
		}
		expr, ok := exprs[section]
		if !ok {
			expr = fmt.Sprintf("COALESCE(%s, '{}'::jsonb)", section)
		}
		exprs[section] = fmt.Sprintf("jsonb_set(%s, '{%s}', ?::jsonb, true)", expr, field)
		args[section] = append(args[section], string(raw))
	}

	for section, expr := range exprs {
		assignments[string(section)] = gorm.Expr(expr, args[section]...)
	}
	return assignments, nil
}

func invalidField(path string) error {
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid field path %q", path))
}

func parseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

// Ensure GormPartnerRepository implements partner.Repository
var _ partner.Repository = (*GormPartnerRepository)(nil)
