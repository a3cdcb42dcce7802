package partner

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
)

// Repository defines the interface for partner persistence.
// Identifiers are taken as raw strings; a malformed id behaves exactly like an unknown one.
type Repository interface {
	// Create inserts the partner and sets its store-assigned ID
	Create(ctx context.Context, p *Partner) (*Partner, error)

	// FindByID returns the partner, soft-deleted or not, or shared.ErrNotFound
	FindByID(ctx context.Context, id string) (*Partner, error)

	// Update applies dotted-path assignments and returns the refreshed partner
	Update(ctx context.Context, id string, fields Fields) (*Partner, error)

	// Replace overwrites every document section and returns the refreshed partner
	Replace(ctx context.Context, id string, p *Partner) (*Partner, error)

	// List returns one page of partners matching filters, newest first, and the total match count
	List(ctx context.Context, filters Filters, page shared.Page) ([]Partner, int64, error)

	// Search ranks partners by relevance to text; empty text behaves like List
	Search(ctx context.Context, text string, filters Filters, page shared.Page) ([]Partner, int64, error)

	// SoftDelete flags the partner as deleted. It returns false when no live partner matched.
	SoftDelete(ctx context.Context, id string) (bool, error)
}
