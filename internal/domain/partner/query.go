package partner

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// PathIsDeleted is the soft-delete flag every list and search excludes on
const PathIsDeleted = "meta.is_deleted"

// Filters maps dotted paths to exact-match values. All entries must match.
type Filters map[string]any

// FilterParam binds a query-string parameter to the dotted path it filters on
type FilterParam struct {
	Param string
	Path  string
}

// ListFilterParams are the equality filters accepted by the list endpoint
var ListFilterParams = []FilterParam{
	{Param: "funnel_stage", Path: "analysis.funnel_stage"},
	{Param: "business_type", Path: "identity.business_type"},
	{Param: "financial_level", Path: "analysis.financial_level"},
	{Param: "purchase_readiness", Path: "analysis.purchase_readiness"},
	{Param: "potential_level", Path: "analysis.potential_level"},
	{Param: "source", Path: "acquisition.source"},
	{Param: "province", Path: "identity.province"},
	{Param: "city", Path: "identity.city"},
	{Param: "map_link", Path: "identity.map_link"},
	{Param: "tag", Path: "analysis.tags"},
}

// SearchFilterParams are the filters that can narrow a text search
var SearchFilterParams = []FilterParam{
	{Param: "funnel_stage", Path: "analysis.funnel_stage"},
	{Param: "business_type", Path: "identity.business_type"},
	{Param: "potential_level", Path: "analysis.potential_level"},
	{Param: "financial_level", Path: "analysis.financial_level"},
	{Param: "province", Path: "identity.province"},
	{Param: "city", Path: "identity.city"},
	{Param: "tag", Path: "analysis.tags"},
}

// arrayPaths hold lists; a filter on them matches when the list contains the value
var arrayPaths = map[string]bool{
	"analysis.tags": true,
}

// IsArrayPath reports whether path is matched by membership instead of equality
func IsArrayPath(path string) bool {
	return arrayPaths[path]
}

// BuildFilters translates query parameters into store filters using table.
// Blank parameters contribute nothing. Soft-deleted partners are always excluded.
func BuildFilters(params map[string]string, table []FilterParam) Filters {
	filters := Filters{PathIsDeleted: false}
	for _, fp := range table {
		v := NormalizeText(params[fp.Param])
		if v == "" {
			continue
		}
		filters[fp.Path] = v
	}
	return filters
}

// ListQuery is a filtered, paginated listing request
type ListQuery struct {
	Params map[string]string
	Page   shared.Page
}

// Filters returns the store filters for the listing
func (q ListQuery) Filters() Filters {
	return BuildFilters(q.Params, ListFilterParams)
}

// SearchQuery is a full-text search narrowed by optional filters
type SearchQuery struct {
	Text   string
	Params map[string]string
	Page   shared.Page
}

// Filters returns the store filters that narrow the search
func (q SearchQuery) Filters() Filters {
	return BuildFilters(q.Params, SearchFilterParams)
}

// Terms returns the normalized search text; empty means "no text criterion"
func (q SearchQuery) Terms() string {
	return strings.Join(strings.Fields(NormalizeText(q.Text)), " ")
}
