// Package feepolicy implements the two fee concerns a wallet needs: a
// deterministic minimum-fee calculation from transaction shape, and a
// fee-rate estimator driven by recent mempool samples.
package feepolicy

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mass model coefficients, named so they can be tuned without touching
// the calculation itself. These mirror the network's mempool acceptance
// policy; implementations embedding a different network's policy should
// override them via Config.
const (
	DefaultMassPerInput       uint64 = 1000
	DefaultMassPerOutput      uint64 = 1000
	DefaultMassPerPayloadByte uint64 = 1
	DefaultBaseMass           uint64 = 1000
	DefaultMinRate            uint64 = 1
	// MinFeeFloor is the absolute minimum fee regardless of mass, in base
	// units.
	MinFeeFloor uint64 = 1000
)

// MassConfig holds the mass-model coefficients MinFee uses.
type MassConfig struct {
	MassPerInput       uint64
	MassPerOutput      uint64
	MassPerPayloadByte uint64
	BaseMass           uint64
	MinRate            uint64
}

// DefaultMassConfig returns the coefficients matched to the network's
// current mempool policy.
func DefaultMassConfig() MassConfig {
	return MassConfig{
		MassPerInput:       DefaultMassPerInput,
		MassPerOutput:      DefaultMassPerOutput,
		MassPerPayloadByte: DefaultMassPerPayloadByte,
		BaseMass:           DefaultBaseMass,
		MinRate:            DefaultMinRate,
	}
}

// Mass computes the affine transaction mass from shape alone.
func (c MassConfig) Mass(nInputs, nOutputs, payloadLen int) uint64 {
	return c.BaseMass +
		c.MassPerInput*uint64(nInputs) +
		c.MassPerOutput*uint64(nOutputs) +
		c.MassPerPayloadByte*uint64(payloadLen)
}

// MinFee returns max(mass × min_rate, MinFeeFloor) base units.
func (c MassConfig) MinFee(nInputs, nOutputs, payloadLen int) uint64 {
	fee := c.Mass(nInputs, nOutputs, payloadLen) * c.MinRate
	if fee < MinFeeFloor {
		return MinFeeFloor
	}
	return fee
}

// Priority names one of the four recommendation buckets.
type Priority int

const (
	Low Priority = iota
	Normal
	High
	Urgent
)

// Recommendations is a FeePolicy estimation result: one rate per
// priority, in base units per mass-unit.
type Recommendations struct {
	Low            uint64
	Normal         uint64
	High           uint64
	Urgent         uint64
	BasedOnSamples int
	MempoolSize    int
	// SampleSetID identifies the cache slot this result was computed or
	// served from. Two calls returning the same SampleSetID were served
	// from the same cache entry; a fresh computation gets a fresh id.
	SampleSetID string
}

// MempoolEntry is the subset of a mempool entry the estimator needs.
type MempoolEntry struct {
	Fee  uint64
	Mass uint64
}

const (
	minPlausibleRate = 0.5
	maxPlausibleRate = 100.0
	minSampleCount   = 10
	percentileFloor  = 1
	percentileCeil   = 50
)

var fallbackRecommendations = Recommendations{Low: 1, Normal: 1, High: 2, Urgent: 3}

// cacheSlots bounds how many distinct EstimateFor keys (e.g. one per
// network or per Priority bucket a caller polls separately) the Estimator
// keeps warm at once. Once exceeded, golang-lru evicts the
// least-recently-used slot.
const cacheSlots = 8

// defaultCacheKey is the slot Estimate uses; callers juggling more than
// one mempool feed should call EstimateFor with a key of their own
// choosing instead.
const defaultCacheKey = "default"

// Estimator samples recent mempool entries and caches the resulting
// Recommendations, per cache key, for a configurable TTL.
type Estimator struct {
	ttlSeconds int64
	cache      *lru.Cache
	logger     *zap.SugaredLogger
	now        func() int64
}

// NewEstimator builds an Estimator with the given cache TTL in seconds
// (60 if ttlSeconds <= 0) and an optional logger (nil disables logging of
// fallback events).
func NewEstimator(ttlSeconds int64, logger *zap.SugaredLogger) (*Estimator, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = 60
	}
	c, err := lru.New(cacheSlots)
	if err != nil {
		return nil, err
	}
	return &Estimator{ttlSeconds: ttlSeconds, cache: c, logger: logger, now: func() int64 { return time.Now().Unix() }}, nil
}

type cachedValue struct {
	value     Recommendations
	expiresAt int64
}

// Estimate produces Recommendations from entries, caching under the
// default key. Callers polling more than one mempool feed from the same
// Estimator should use EstimateFor instead, so each feed gets its own
// cache slot.
func (e *Estimator) Estimate(entries []MempoolEntry, rpcErr error) Recommendations {
	return e.EstimateFor(defaultCacheKey, entries, rpcErr)
}

// EstimateFor produces Recommendations from entries, caching the result
// under key. On an RPC-failure path callers should pass rpcErr instead of
// attempting to call EstimateFor with a partial or empty sample set
// silently; EstimateFor itself never returns an error: the estimator is
// the one component that degrades to a conservative fallback instead of
// surfacing a failure.
func (e *Estimator) EstimateFor(key string, entries []MempoolEntry, rpcErr error) Recommendations {
	if cached, ok := e.cached(key); ok {
		return cached
	}

	if rpcErr != nil {
		if e.logger != nil {
			e.logger.Warnw("mempool rpc failed, using fallback fee recommendations", "error", rpcErr)
		}
		rec := fallbackRecommendations
		rec.MempoolSize = 0
		return e.store(key, rec)
	}

	rates := filterRates(entries)
	if len(rates) < minSampleCount {
		rec := fallbackRecommendations
		rec.BasedOnSamples = len(rates)
		rec.MempoolSize = len(entries)
		return e.store(key, rec)
	}

	trimmed := trimIQROutliers(rates)
	rec := Recommendations{
		Low:            clampPercentile(percentile(trimmed, 25)),
		Normal:         clampPercentile(percentile(trimmed, 50)),
		High:           clampPercentile(percentile(trimmed, 75)),
		Urgent:         clampPercentile(percentile(trimmed, 90)),
		BasedOnSamples: len(trimmed),
		MempoolSize:    len(entries),
	}
	return e.store(key, rec)
}

// ClearCache discards every cached recommendation across every key
// immediately.
func (e *Estimator) ClearCache() {
	e.cache.Purge()
}

func (e *Estimator) cached(key string) (Recommendations, bool) {
	raw, ok := e.cache.Get(key)
	if !ok {
		return Recommendations{}, false
	}
	v := raw.(cachedValue)
	if e.now() >= v.expiresAt {
		e.cache.Remove(key)
		return Recommendations{}, false
	}
	return v.value, true
}

func (e *Estimator) store(key string, rec Recommendations) Recommendations {
	rec.SampleSetID = uuid.NewString()
	e.cache.Add(key, cachedValue{
		value:     rec,
		expiresAt: e.now() + e.ttlSeconds,
	})
	return rec
}

func filterRates(entries []MempoolEntry) []float64 {
	rates := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.Mass == 0 || e.Fee == 0 {
			continue
		}
		rate := float64(e.Fee) / float64(e.Mass)
		if rate < minPlausibleRate || rate > maxPlausibleRate {
			continue
		}
		rates = append(rates, rate)
	}
	return rates
}

func trimIQROutliers(rates []float64) []float64 {
	sorted := append([]float64(nil), rates...)
	sort.Float64s(sorted)
	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	out := make([]float64, 0, len(sorted))
	for _, r := range sorted {
		if r >= lower && r <= upper {
			out = append(out, r)
		}
	}
	return out
}

// percentile computes p over already-sorted data using linear
// interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func clampPercentile(v float64) uint64 {
	rounded := uint64(v + 0.5)
	if rounded < percentileFloor {
		return percentileFloor
	}
	if rounded > percentileCeil {
		return percentileCeil
	}
	return rounded
}
