package quantity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBackorderLimitIsAHardCap(t *testing.T) {
	t.Parallel()

	limits := Limits{BackorderLimit: intPtr(5)}
	for q := 1; q <= 5; q++ {
		res := Resolve(0, q, limits)
		require.Equal(t, q, res.Quantity)
		require.False(t, res.Blocked)
	}
	for _, q := range []int{6, 7, 100} {
		res := Resolve(0, q, limits)
		require.Equal(t, 5, res.Quantity)
		require.True(t, res.Blocked)
		require.Equal(t, "Maximum allowed quantity is 5", res.Message)
	}
}

func TestBackorderLimitBeatsStockAndBackorderFlag(t *testing.T) {
	t.Parallel()

	limits := Limits{StockQuantity: intPtr(100), AllowBackorder: false, BackorderLimit: intPtr(5)}
	res := Resolve(0, 50, limits)
	require.Equal(t, 5, res.Quantity)
	require.True(t, res.Blocked)

	// even with backorder allowed the declared limit wins
	limits.AllowBackorder = true
	res = Resolve(0, 50, limits)
	require.Equal(t, 5, res.Quantity)
	require.True(t, res.Blocked)
}

func TestStockCapsWhenBackorderDisallowed(t *testing.T) {
	t.Parallel()

	limits := Limits{StockQuantity: intPtr(10)}

	res := Resolve(0, 12, limits)
	require.Equal(t, 10, res.Quantity)
	require.True(t, res.Blocked)
	require.Equal(t, "Maximum allowed quantity is 10", res.Message)

	res = Resolve(0, 10, limits)
	require.Equal(t, 10, res.Quantity)
	require.False(t, res.Blocked)
}

func TestBackorderAllowedIsUnbounded(t *testing.T) {
	t.Parallel()

	limits := Limits{StockQuantity: intPtr(0), AllowBackorder: true}
	res := Resolve(0, 50, limits)
	require.Equal(t, 50, res.Quantity)
	require.False(t, res.Blocked)
}

func TestMissingStockIsUnbounded(t *testing.T) {
	t.Parallel()

	res := Resolve(0, 9999, Limits{})
	require.Equal(t, 9999, res.Quantity)
	require.False(t, res.Blocked)
}

func TestIncrementAtCapIsRefusedButStillNotices(t *testing.T) {
	t.Parallel()

	limits := Limits{BackorderLimit: intPtr(3)}
	res := Resolve(3, 4, limits)
	require.Equal(t, 3, res.Quantity)
	require.True(t, res.Blocked)
	require.Equal(t, "Maximum allowed quantity is 3", res.Message)
	require.False(t, res.Changed(3), "no mutation when already at the cap")
}

func TestDecrementFromOneRemovesLine(t *testing.T) {
	t.Parallel()

	res := Resolve(1, 0, Limits{StockQuantity: intPtr(10)})
	require.True(t, res.Remove)
	require.True(t, res.Changed(1))
}

func TestZeroCapRemovesExistingLine(t *testing.T) {
	t.Parallel()

	limits := Limits{StockQuantity: intPtr(0)}
	res := Resolve(2, 3, limits)
	require.True(t, res.Blocked)
	require.True(t, res.Remove)

	// adding a brand new line against zero stock blocks without a removal
	res = Resolve(0, 1, limits)
	require.True(t, res.Blocked)
	require.False(t, res.Remove)
	require.Equal(t, 0, res.Quantity)
}

func TestNormalizeDirectEntry(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"abc":  1,
		"":     1,
		"0":    1,
		"-4":   1,
		"2.9":  2,
		" 7 ":  7,
		"12":   12,
		"NaN":  1,
		"1e2":  100,
		"0.99": 1,
	}
	for raw, want := range cases {
		require.Equal(t, want, Normalize(raw), "input %q", raw)
	}
}

func TestNormalizedEntryStillClamps(t *testing.T) {
	t.Parallel()

	limits := Limits{StockQuantity: intPtr(10)}
	res := Resolve(4, Normalize("25"), limits)
	require.Equal(t, 10, res.Quantity)
	require.True(t, res.Blocked)

	res = Resolve(4, Normalize("abc"), limits)
	require.Equal(t, 1, res.Quantity)
	require.False(t, res.Blocked)
}

func TestResolutionChanged(t *testing.T) {
	t.Parallel()

	require.True(t, Resolution{Quantity: 2}.Changed(1))
	require.False(t, Resolution{Quantity: 2}.Changed(2))
	require.True(t, Resolution{Remove: true}.Changed(1))
	require.False(t, Resolution{Remove: true}.Changed(0))
}

func TestMaxPrecedenceTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		limits  Limits
		max     int
		bounded bool
	}{
		{Limits{BackorderLimit: intPtr(5), StockQuantity: intPtr(100)}, 5, true},
		{Limits{AllowBackorder: true, StockQuantity: intPtr(2)}, 0, false},
		{Limits{StockQuantity: intPtr(7)}, 7, true},
		{Limits{}, 0, false},
		{Limits{BackorderLimit: intPtr(0)}, 0, true},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			t.Parallel()
			max, bounded := Max(tc.limits)
			require.Equal(t, tc.max, max)
			require.Equal(t, tc.bounded, bounded)
		})
	}
}
