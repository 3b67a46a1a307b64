// Package uid provides pluggable unique identifier generators.
package uid

// StringID generates opaque string identifiers, such as correlation IDs.
type StringID interface {
	Generate() string
}

// NumberID generates 64-bit numeric identifiers for database rows.
type NumberID interface {
	Generate() int64
}
