package awards

import (
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// CountByStatus tallies awards per status. Every status is present.
func CountByStatus(awards []models.SupplierAward) map[enums.AwardStatus]int {
	counts := map[enums.AwardStatus]int{
		enums.AwardStatusPendingConfirmation: 0,
		enums.AwardStatusConfirmed:           0,
		enums.AwardStatusPartiallyConfirmed:  0,
		enums.AwardStatusWithdrawn:           0,
	}
	for _, award := range awards {
		counts[award.Status]++
	}
	return counts
}

// FilterByStatus keeps awards in status; an empty status keeps all.
func FilterByStatus(awards []models.SupplierAward, status enums.AwardStatus) []models.SupplierAward {
	out := make([]models.SupplierAward, 0, len(awards))
	for _, award := range awards {
		if status != "" && award.Status != status {
			continue
		}
		out = append(out, award)
	}
	return out
}
