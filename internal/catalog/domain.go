// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Performance is the rating triple of a part. The key names p/a/m are a
// fixed wire contract shared with the team inventory and the UI.
type Performance struct {
	P int `json:"p"`
	A int `json:"a"`
	M int `json:"m"`
}

// Part represents a globally-available part definition in the store.
type Part struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       float64     `json:"price"`
	Stock       int         `json:"stock"`
	Performance Performance `json:"performance"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// The five categories a car must cover before it can be finalized.
// Exact name matching, no synonyms.
const (
	CategoryPowerUnit  = "Power Unit"
	CategoryAeroPkg    = "Aero Package"
	CategoryTires      = "Tires"
	CategorySuspension = "Suspension"
	CategoryGearbox    = "Gearbox"
)

var requiredCategories = []string{
	CategoryPowerUnit,
	CategoryAeroPkg,
	CategoryTires,
	CategorySuspension,
	CategoryGearbox,
}

// RequiredCategories returns the fixed ordered set of mandatory part
// categories.
func RequiredCategories() []string {
	out := make([]string, len(requiredCategories))
	copy(out, requiredCategories)
	return out
}

// IsRequiredCategory reports whether name is one of the five mandatory
// categories.
func IsRequiredCategory(name string) bool {
	for _, c := range requiredCategories {
		if c == name {
			return true
		}
	}
	return false
}
