// internal/sponsors/domain.go
package sponsors

import (
	"time"

	"github.com/google/uuid"
)

// Sponsor is a directory entry, independent of the per-team sponsor
// attachments. Teams reference directory sponsors by name when
// attaching them.
type Sponsor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
