// internal/team/budget.go
package team

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddock/internal/apperr"
)

// AddContribution appends a sponsor payment to the ledger and recomputes
// the budget total as the sum of all recorded amounts. The total is
// never assigned directly.
func (s *service) AddContribution(ctx context.Context, teamID, sponsorID uuid.UUID, amount float64, date time.Time, description string) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	sponsor := t.findSponsor(sponsorID)
	if sponsor == nil {
		return nil, apperr.Validation(fmt.Sprintf("sponsor %s does not belong to this team", sponsorID))
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, apperr.Validation("contribution amount must be a non-negative number")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	t.Contributions = append(t.Contributions, Contribution{
		ID:          uuid.New(),
		SponsorID:   sponsor.ID,
		SponsorName: sponsor.Name,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(description),
	})
	recomputeBudgetTotal(t)

	return s.save(ctx, t)
}

// recomputeBudgetTotal re-derives budget.total from the ledger.
func recomputeBudgetTotal(t *Team) {
	total := 0.0
	for _, c := range t.Contributions {
		total += c.Amount
	}
	t.Budget.Total = total
}

// reserve debits cost from the budget, failing without mutation when the
// available budget cannot cover it. Spent may legitimately reach total.
func reserve(t *Team, cost float64) error {
	if available := t.AvailableBudget(); available < cost {
		return apperr.Insufficient(fmt.Sprintf("insufficient budget: available %.2f, need %.2f", available, cost))
	}
	t.Budget.Spent += cost
	return nil
}
