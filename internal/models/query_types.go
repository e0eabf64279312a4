// internal/models/query_types.go
package models

// NameKind identifies a lookup table used to resolve display names.
type NameKind string

const (
	NameKindSkill    NameKind = "skills"
	NameKindCourse   NameKind = "courses"
	NameKindLocation NameKind = "locations"
)

// UnknownName is shown when an identifier has no matching lookup row.
const UnknownName = "Unknown"

// CatalogSource selects where the pathway catalog is read from.
type CatalogSource string

const (
	CatalogSourcePostgres      CatalogSource = "postgres"
	CatalogSourceElasticsearch CatalogSource = "elasticsearch"
)
