package services

import (
	"math"

	"github.com/openeats/dinesync/internal/core/domain"
)

// ratingTolerance is the rating jitter ignored by the change policy.
// Providers wobble aggregate ratings by a few hundredths between fetches;
// writing on every wobble would amplify noise into load on the store.
const ratingTolerance = 0.1

// SignificantChange reports whether the difference between an existing
// record and the incoming canonical restaurant warrants a write.
//
// Every compared field except rating is significant on any inequality,
// including one side being absent. Rating is significant only when it moved
// by more than the tolerance.
func SignificantChange(existing *domain.DirectoryRecord, incoming domain.Restaurant) bool {
	if existing.ReviewCount != incoming.ReviewCount {
		return true
	}
	if existing.Phone != incoming.Phone {
		return true
	}
	if existing.Website != incoming.Website {
		return true
	}
	if existing.HoursText != incoming.HoursText {
		return true
	}
	if existing.Address != incoming.Address {
		return true
	}
	if existing.PriceTier != incoming.PriceTier {
		return true
	}
	if math.Abs(existing.Rating-incoming.Rating) > ratingTolerance {
		return true
	}
	return false
}
