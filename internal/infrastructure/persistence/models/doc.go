// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// A partner is stored as one row of the partners table: each document section
// is a JSONB column (datatypes.JSONType) so dotted-path updates can be applied
// in place with jsonb_set, while meta fields are ordinary columns that can be
// indexed and filtered directly.
package models
