package feepolicy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinFeeAppliesFloor(t *testing.T) {
	cfg := DefaultMassConfig()
	fee := cfg.MinFee(0, 0, 0)
	assert.Equal(t, MinFeeFloor, fee)
}

func TestMinFeeScalesWithShape(t *testing.T) {
	cfg := DefaultMassConfig()
	small := cfg.MinFee(1, 1, 0)
	large := cfg.MinFee(5, 5, 200)
	assert.Greater(t, large, small)
}

// TestFallbackOnEmptyMempool checks that an empty mempool response yields
// (Low=1, Normal=1, High=2, Urgent=3), basedOnSamples=0, mempoolSize=0.
func TestFallbackOnEmptyMempool(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	rec := est.Estimate(nil, nil)
	assert.Equal(t, uint64(1), rec.Low)
	assert.Equal(t, uint64(1), rec.Normal)
	assert.Equal(t, uint64(2), rec.High)
	assert.Equal(t, uint64(3), rec.Urgent)
	assert.Equal(t, 0, rec.BasedOnSamples)
	assert.Equal(t, 0, rec.MempoolSize)
}

func TestRPCFailureUsesFallback(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	entries := make([]MempoolEntry, 20)
	for i := range entries {
		entries[i] = MempoolEntry{Fee: 10, Mass: 1000}
	}
	rec := est.Estimate(entries, assert.AnError)
	assert.Equal(t, fallbackRecommendations.Low, rec.Low)
	assert.Equal(t, 0, rec.MempoolSize)
}

func sampleEntries(n int, baseRate float64) []MempoolEntry {
	entries := make([]MempoolEntry, n)
	for i := range entries {
		rate := baseRate + float64(i%5)
		entries[i] = MempoolEntry{Fee: uint64(rate * 1000), Mass: 1000}
	}
	return entries
}

func TestFeeRateBoundsOrdering(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	rec := est.Estimate(sampleEntries(30, 2), nil)
	assert.LessOrEqual(t, rec.Low, rec.Normal)
	assert.LessOrEqual(t, rec.Normal, rec.High)
	assert.LessOrEqual(t, rec.High, rec.Urgent)
	for _, v := range []uint64{rec.Low, rec.Normal, rec.High, rec.Urgent} {
		assert.GreaterOrEqual(t, v, uint64(percentileFloor))
		assert.LessOrEqual(t, v, uint64(percentileCeil))
	}
}

func TestEstimateCachesResult(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	first := est.Estimate(sampleEntries(30, 2), nil)
	second := est.Estimate(sampleEntries(30, 50), nil) // would differ if not cached
	assert.Equal(t, first, second)

	est.ClearCache()
	third := est.Estimate(sampleEntries(30, 50), nil)
	assert.NotEqual(t, first.Normal, third.Normal)
}

// TestEstimateForKeysIndependentSlots checks that two keys polled through
// the same Estimator cache independently: a cache hit on one key must not
// be satisfied by a fresh computation stored under another key, and each
// computed result carries its own SampleSetID.
func TestEstimateForKeysIndependentSlots(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	mainnet := est.EstimateFor("mainnet", sampleEntries(30, 2), nil)
	testnet := est.EstimateFor("testnet", sampleEntries(30, 50), nil)

	assert.NotEqual(t, mainnet.Normal, testnet.Normal)
	assert.NotEmpty(t, mainnet.SampleSetID)
	assert.NotEmpty(t, testnet.SampleSetID)
	assert.NotEqual(t, mainnet.SampleSetID, testnet.SampleSetID)

	mainnetAgain := est.EstimateFor("mainnet", sampleEntries(30, 99), nil) // would differ if not cached
	assert.Equal(t, mainnet, mainnetAgain)
}

// TestEstimateForEvictsLeastRecentlyUsed checks that exceeding cacheSlots
// distinct keys evicts the least-recently-used slot rather than growing
// the cache unbounded.
func TestEstimateForEvictsLeastRecentlyUsed(t *testing.T) {
	est, err := NewEstimator(60, nil)
	require.NoError(t, err)

	for i := 0; i < cacheSlots+1; i++ {
		est.EstimateFor(fmt.Sprintf("key-%d", i), sampleEntries(30, 2), nil)
	}

	_, ok := est.cached("key-0")
	assert.False(t, ok, "oldest key should have been evicted")

	_, ok = est.cached(fmt.Sprintf("key-%d", cacheSlots))
	assert.True(t, ok, "most recently added key should still be cached")
}

func TestDiscardsImplausibleRates(t *testing.T) {
	entries := make([]MempoolEntry, 15)
	for i := range entries {
		entries[i] = MempoolEntry{Fee: 1000, Mass: 1} // rate 1000, above max plausible
	}
	rates := filterRates(entries)
	assert.Empty(t, rates)
}
