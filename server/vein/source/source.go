// Package source loads vein definition documents from directories and databases.
package source

import (
	"github.com/df-mc/oreveins/server/vein/doc"
)

// Source provides vein definitions keyed by their id.
type Source interface {
	// Documents returns all definitions of the Source. Definitions that could not be read are left out and reported
	// in the error returned, which may be non-nil even if documents are returned.
	Documents() (map[string]doc.Document, error)
}
