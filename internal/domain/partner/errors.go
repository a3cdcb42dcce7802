package partner

import "github.com/crm/backend/internal/domain/shared"

// Partner lookups share the NOT_FOUND code, so errors.Is(err, shared.ErrNotFound) holds for both
var (
	ErrPartnerNotFound = shared.NewDomainError("NOT_FOUND", "Partner not found")
	ErrAlreadyDeleted  = shared.NewDomainError("NOT_FOUND", "Partner already deleted")
)
