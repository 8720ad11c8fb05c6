package orders

import (
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
)

// Allocate distributes the order-level customs and shipping fees across the
// provided items in proportion to each item's subtotal (unit price times
// quantity), rounded down to cents. The last item absorbs the rounding
// remainder so the allocations always sum to the full fee and every
// allocation stays non-negative. Items are updated in place, including
// TotalPrice.
//
// A nil fee counts as zero. When the combined subtotal is zero the fees are
// left unallocated and every allocation is zero.
func Allocate(items []models.OrderItem, customsFees, shippingCost *decimal.Decimal) {
	if len(items) == 0 {
		return
	}

	customs := decimal.Zero
	if customsFees != nil {
		customs = *customsFees
	}
	shipping := decimal.Zero
	if shippingCost != nil {
		shipping = *shippingCost
	}

	subtotals := make([]decimal.Decimal, len(items))
	total := decimal.Zero
	for i, item := range items {
		subtotals[i] = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotals[i])
	}

	if total.IsZero() {
		for i := range items {
			items[i].AllocatedCustomsFee = decimal.Zero
			items[i].AllocatedShipping = decimal.Zero
			items[i].TotalPrice = subtotals[i]
		}
		return
	}

	customsLeft := customs
	shippingLeft := shipping
	last := len(items) - 1
	for i := range items {
		var allocCustoms, allocShipping decimal.Decimal
		if i == last {
			// remainder absorption keeps the column sums exact
			allocCustoms = customsLeft
			allocShipping = shippingLeft
		} else {
			// round down so the remainder for the last item never goes
			// negative, even for fees smaller than a cent per item
			share := subtotals[i].Div(total)
			allocCustoms = customs.Mul(share).RoundDown(2)
			allocShipping = shipping.Mul(share).RoundDown(2)
			customsLeft = customsLeft.Sub(allocCustoms)
			shippingLeft = shippingLeft.Sub(allocShipping)
		}
		items[i].AllocatedCustomsFee = allocCustoms
		items[i].AllocatedShipping = allocShipping
		items[i].TotalPrice = subtotals[i].Add(allocCustoms).Add(allocShipping)
	}
}
