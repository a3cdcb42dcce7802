package partner

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// Section names a top-level part of the partner document
type Section string

const (
	SectionIdentity            Section = "identity"
	SectionRelationship        Section = "relationship"
	SectionFinancialEstimation Section = "financial_estimation"
	SectionAnalysis            Section = "analysis"
	SectionAcquisition         Section = "acquisition"
	SectionMeta                Section = "meta"
)

// DocumentSections are the client-editable sections, in storage order
var DocumentSections = []Section{
	SectionIdentity,
	SectionRelationship,
	SectionFinancialEstimation,
	SectionAnalysis,
	SectionAcquisition,
}

// IsValid returns true for any known section, meta included
func (s Section) IsValid() bool {
	return s == SectionMeta || slices.Contains(DocumentSections, s)
}

// Path joins a section and a field into a dotted path such as "analysis.funnel_stage"
func (s Section) Path(field string) string {
	return string(s) + "." + field
}

// Fields maps dotted paths to the values they should be set to.
// A nil value is an explicit null.
type Fields map[string]any

// Paths returns the dotted paths in sorted order
func (f Fields) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Has reports whether path is assigned
func (f Fields) Has(path string) bool {
	_, ok := f[path]
	return ok
}

// SplitPath splits "section.field" into its parts
func SplitPath(path string) (Section, string, error) {
	section, field, ok := strings.Cut(path, ".")
	if !ok || field == "" || strings.Contains(field, ".") {
		return "", "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid field path %q", path))
	}
	s := Section(section)
	if !s.IsValid() {
		return "", "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown section %q", section))
	}
	return s, field, nil
}

// FlattenUpdate turns a partial section payload into dotted-path assignments.
//
// Only fields whose JSON names appear in set are emitted, so absent fields are
// left untouched in storage while fields explicitly sent as null are cleared.
// Lists sent as null are cleared to an empty list.
// Names in set that the payload does not declare are ignored. Free text is
// normalized the same way NewPartner does it. An update that ends up with no
// assignments returns shared.ErrEmptyUpdate.
func FlattenUpdate(section Section, payload any, set []string) (Fields, error) {
	if !section.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown section %q", section))
	}

	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, shared.ErrEmptyUpdate
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, shared.NewDomainError("INVALID_INPUT", "Update payload must be an object")
	}

	wanted := make(map[string]struct{}, len(set))
	for _, name := range set {
		wanted[name] = struct{}{}
	}

	fields := Fields{}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		if name == "" {
			continue
		}
		if _, ok := wanted[name]; !ok {
			continue
		}
		fields[section.Path(name)] = normalizeValue(v.Field(i))
	}

	if len(fields) == 0 {
		return nil, shared.ErrEmptyUpdate
	}
	return fields, nil
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func normalizeValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if s, ok := v.Interface().(*string); ok {
			if n := normalizeOptional(s); n != nil {
				return *n
			}
			return nil
		}
		return v.Interface()
	case reflect.String:
		if v.Type() == reflect.TypeOf("") {
			return NormalizeText(v.String())
		}
		return v.Interface()
	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}
		if tags, ok := v.Interface().([]string); ok {
			return normalizeTags(tags)
		}
		return v.Interface()
	default:
		return v.Interface()
	}
}
