package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chair = Product{ID: "1", Name: "Teak Chair", Price: 2500000, Image: "chair.jpg", Description: "d"}
	bowls = Product{ID: "2", Name: "Wooden Bowl Set", Price: 150000, Image: "bowl.jpg"}
)

func TestCart_Add_SameIDMergesQuantity(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 1))
	require.NoError(t, c.Add(chair, 3))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(4), c.Lines[0].Quantity)
	assert.Equal(t, int64(10000000), c.Total())
}

func TestCart_Add_KeepsFirstSnapshot(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 1))

	repriced := chair
	repriced.Price = 1
	require.NoError(t, c.Add(repriced, 1))

	assert.Equal(t, int64(2500000), c.Lines[0].Price)
}

func TestCart_Add_InsertionOrder(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(bowls, 1))
	require.NoError(t, c.Add(chair, 1))
	require.NoError(t, c.Add(bowls, 1))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "2", c.Lines[0].ID)
	assert.Equal(t, "1", c.Lines[1].ID)
}

func TestCart_ChangeQuantity(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 2))

	changed, err := c.ChangeQuantity("1", 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int64(3), c.Lines[0].Quantity)

	changed, err = c.ChangeQuantity("1", -3)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, c.IsEmpty())

	changed, err = c.ChangeQuantity("1", 1)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCart_ChangeQuantity_BelowZeroRemoves(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 1))
	require.NoError(t, c.Add(bowls, 1))

	_, err := c.ChangeQuantity("1", -5)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "2", c.Lines[0].ID)
}

func TestCart_Remove_Missing(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 1))

	assert.False(t, c.Remove("9"))
	assert.Len(t, c.Lines, 1)
}

func TestCart_EmptyTotals(t *testing.T) {
	var c Cart
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, int64(0), c.Count())
	assert.NotNil(t, c.Snapshot())
}

func TestCart_Snapshot_IsCopy(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 1))

	s := c.Snapshot()
	s[0].Quantity = 99

	assert.Equal(t, int64(1), c.Lines[0].Quantity)
}

func TestCart_Validate(t *testing.T) {
	cases := []struct {
		name  string
		lines []CartLine
		ok    bool
	}{
		{"empty", nil, true},
		{"valid", []CartLine{{ID: "1", Price: 1, Quantity: 1}}, true},
		{"empty id", []CartLine{{ID: "", Quantity: 1}}, false},
		{"zero quantity", []CartLine{{ID: "1", Quantity: 0}}, false},
		{"negative price", []CartLine{{ID: "1", Price: -1, Quantity: 1}}, false},
		{"duplicate", []CartLine{{ID: "1", Quantity: 1}, {ID: "1", Quantity: 2}}, false},
		{"over limit", []CartLine{{ID: "1", Price: 1, Quantity: MaxLineQuantity + 1}}, false},
		{"total overflow", []CartLine{{ID: "1", Price: math.MaxInt64, Quantity: 2}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Cart{Lines: tc.lines}.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidLine)
			}
		})
	}
}

func TestCart_Add_RejectsQuantityOverflow(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, MaxLineQuantity))

	err := c.Add(chair, 1)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	assert.Equal(t, MaxLineQuantity, c.Lines[0].Quantity)

	err = c.Add(bowls, math.MaxInt64)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	assert.Len(t, c.Lines, 1)
}

func TestCart_Add_RejectsTotalOverflow(t *testing.T) {
	var c Cart
	pricey := Product{ID: "9", Price: math.MaxInt64 / 2}
	require.NoError(t, c.Add(pricey, 1))

	err := c.Add(pricey, 2)
	assert.ErrorIs(t, err, ErrTotalOverflow)
	assert.Equal(t, int64(1), c.Lines[0].Quantity)

	other := Product{ID: "10", Price: math.MaxInt64 / 2}
	require.NoError(t, c.Add(other, 1))
	err = c.Add(chair, 1)
	assert.ErrorIs(t, err, ErrTotalOverflow)
	assert.Len(t, c.Lines, 2)
	assert.GreaterOrEqual(t, c.Total(), int64(0))
}

func TestCart_ChangeQuantity_RejectsPositiveOverflow(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 2))

	changed, err := c.ChangeQuantity("1", math.MaxInt64)
	assert.True(t, changed)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(2), c.Lines[0].Quantity)
}

func TestCart_ChangeQuantity_HugeNegativeRemoves(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(chair, 2))

	_, err := c.ChangeQuantity("1", math.MinInt64)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
