// Package recipeimport provides a relay that turns a recipe page URL into a
// structured recipe. It fetches the page, reduces it to plain text, asks a
// language-model extraction service for a JSON recipe, and returns the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, anthropic/, slog/).
package recipeimport
