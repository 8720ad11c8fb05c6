package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func TestAllocateProportionalSplit(t *testing.T) {
	items := []models.OrderItem{
		{ProductName: "Brass Empire", Quantity: 1, UnitPrice: dec("100.00")},
		{ProductName: "Ark Nova", Quantity: 3, UnitPrice: dec("100.00")},
	}

	Allocate(items, decPtr("40.00"), decPtr("20.00"))

	require.True(t, items[0].AllocatedCustomsFee.Equal(dec("10.00")), "got %s", items[0].AllocatedCustomsFee)
	require.True(t, items[1].AllocatedCustomsFee.Equal(dec("30.00")), "got %s", items[1].AllocatedCustomsFee)
	require.True(t, items[0].AllocatedShipping.Equal(dec("5.00")))
	require.True(t, items[1].AllocatedShipping.Equal(dec("15.00")))
	require.True(t, items[0].TotalPrice.Equal(dec("115.00")))
	require.True(t, items[1].TotalPrice.Equal(dec("345.00")))
}

func TestAllocateRemainderGoesToLastItem(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 1, UnitPrice: dec("10.00")},
		{Quantity: 1, UnitPrice: dec("10.00")},
		{Quantity: 1, UnitPrice: dec("10.00")},
	}

	Allocate(items, decPtr("10.00"), nil)

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.AllocatedCustomsFee)
	}
	require.True(t, sum.Equal(dec("10.00")), "allocations must sum to the fee, got %s", sum)
	require.True(t, items[0].AllocatedCustomsFee.Equal(dec("3.33")))
	require.True(t, items[1].AllocatedCustomsFee.Equal(dec("3.33")))
	require.True(t, items[2].AllocatedCustomsFee.Equal(dec("3.34")))
}

func TestAllocateTinyFeeStaysNonNegative(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 1, UnitPrice: dec("1.00")},
		{Quantity: 1, UnitPrice: dec("1.00")},
		{Quantity: 1, UnitPrice: dec("1.00")},
		{Quantity: 1, UnitPrice: dec("1.00")},
		{Quantity: 1, UnitPrice: dec("1.00")},
	}

	Allocate(items, decPtr("0.03"), nil)

	sum := decimal.Zero
	for i, item := range items {
		require.False(t, item.AllocatedCustomsFee.IsNegative(), "item %d got %s", i, item.AllocatedCustomsFee)
		sum = sum.Add(item.AllocatedCustomsFee)
	}
	require.True(t, sum.Equal(dec("0.03")), "allocations must sum to the fee, got %s", sum)
}

func TestAllocateZeroSubtotalLeavesFeesUnallocated(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, UnitPrice: dec("0.00")},
		{Quantity: 1, UnitPrice: dec("0.00")},
	}

	Allocate(items, decPtr("25.00"), decPtr("5.00"))

	for _, item := range items {
		require.True(t, item.AllocatedCustomsFee.IsZero())
		require.True(t, item.AllocatedShipping.IsZero())
		require.True(t, item.TotalPrice.IsZero())
	}
}

func TestAllocateNilFeesMeanZero(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, UnitPrice: dec("19.99")},
	}

	Allocate(items, nil, nil)

	require.True(t, items[0].AllocatedCustomsFee.IsZero())
	require.True(t, items[0].AllocatedShipping.IsZero())
	require.True(t, items[0].TotalPrice.Equal(dec("39.98")))
}

func TestAllocateEmptyItemsIsNoop(t *testing.T) {
	Allocate(nil, decPtr("10.00"), decPtr("10.00"))
}
