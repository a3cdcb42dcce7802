package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IndexDefinition is an idempotent index statement provisioned at start-up
type IndexDefinition struct {
	Name      string
	Statement string
}

// PartnerIndexes backs every list filter, the default ordering and full-text search
var PartnerIndexes = []IndexDefinition{
	expressionIndex("idx_partners_funnel_stage", "analysis", "funnel_stage"),
	expressionIndex("idx_partners_business_type", "identity", "business_type"),
	expressionIndex("idx_partners_financial_level", "analysis", "financial_level"),
	expressionIndex("idx_partners_purchase_readiness", "analysis", "purchase_readiness"),
	expressionIndex("idx_partners_potential_level", "analysis", "potential_level"),
	expressionIndex("idx_partners_source", "acquisition", "source"),
	expressionIndex("idx_partners_province", "identity", "province"),
	expressionIndex("idx_partners_city", "identity", "city"),
	expressionIndex("idx_partners_map_link", "identity", "map_link"),
	{
		Name:      "idx_partners_created_at",
		Statement: "CREATE INDEX IF NOT EXISTS idx_partners_created_at ON partners (created_at DESC)",
	},
	{
		Name:      "idx_partners_is_deleted",
		Statement: "CREATE INDEX IF NOT EXISTS idx_partners_is_deleted ON partners (is_deleted)",
	},
	{
		Name:      "idx_partners_tags",
		Statement: "CREATE INDEX IF NOT EXISTS idx_partners_tags ON partners USING GIN ((analysis -> 'tags') jsonb_path_ops)",
	},
	{
		Name:      "idx_partners_search_vector",
		Statement: "CREATE INDEX IF NOT EXISTS idx_partners_search_vector ON partners USING GIN (search_vector)",
	},
}

func expressionIndex(name, section, field string) IndexDefinition {
	return IndexDefinition{
		Name:      name,
		Statement: fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON partners ((%s ->> '%s'))", name, section, field),
	}
}

// EnsureIndexes creates any missing partner index. Every definition is attempted;
// failures are logged and returned joined so the caller can decide whether to continue.
func EnsureIndexes(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var errs []error
	for _, idx := range PartnerIndexes {
		if err := db.WithContext(ctx).Exec(idx.Statement).Error; err != nil {
			log.Warn("Failed to create index",
				zap.String("index", idx.Name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("index %s: %w", idx.Name, err))
			continue
		}
		log.Debug("Index ensured", zap.String("index", idx.Name))
	}
	return errors.Join(errs...)
}
