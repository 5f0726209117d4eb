package classify

import "stockdesk/model"

// thresholds are upper bounds (exclusive) of the Low and Medium tiers.
type thresholds struct {
	low    float64
	medium float64
}

var (
	pieceScale    = thresholds{low: 3, medium: 10}
	standardScale = thresholds{low: 10, medium: 50}
)

// Status classifies a stock level. Piece-counted stock uses a tighter scale.
// A level equal to a bound falls in the higher tier.
func Status(stock float64, pieces bool) string {
	scale := standardScale
	if pieces {
		scale = pieceScale
	}
	switch {
	case stock == 0:
		return model.StatusOutOfStock
	case stock < scale.low:
		return model.StatusLow
	case stock < scale.medium:
		return model.StatusMedium
	default:
		return model.StatusInStock
	}
}

// StatusClass maps a status label to its CSS class.
func StatusClass(status string) string {
	switch status {
	case model.StatusOutOfStock:
		return "out-of-stock"
	case model.StatusLow:
		return "low-stock"
	case model.StatusMedium:
		return "medium-stock"
	case model.StatusInStock:
		return "in-stock"
	default:
		return ""
	}
}
