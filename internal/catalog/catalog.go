// Package catalog orchestrates the point pipeline: it feeds raw device
// exports through normalization and signature building, caches signatures
// per dictionary snapshot, and rolls the results up into per-device
// summaries.
package catalog

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bacmap/internal/config"
	"bacmap/internal/dictionary"
	"bacmap/internal/logging"
	"bacmap/internal/normalize"
	"bacmap/internal/signature"
	"bacmap/internal/types"
)

// Device is one BACnet device export queued for processing.
type Device struct {
	DeviceID      string           `json:"deviceId"`
	EquipmentType string           `json:"equipmentType,omitempty"`
	VendorName    string           `json:"vendorName,omitempty"`
	Points        []types.RawPoint `json:"points"`
}

// CatalogPoint pairs a normalized point with its matching signature.
type CatalogPoint struct {
	Normalized types.NormalizedPoint `json:"normalized"`
	Signature  types.PointSignature  `json:"signature"`
}

// DeviceResult is the processed form of one device. Points keep the order
// of the input export.
type DeviceResult struct {
	DeviceID string         `json:"deviceId"`
	Points   []CatalogPoint `json:"points"`
	Summary  DeviceSummary  `json:"summary"`
}

// DeviceSummary aggregates one device's normalization outcome.
type DeviceSummary struct {
	TotalPoints       int                           `json:"totalPoints"`
	NeedsReview       int                           `json:"needsReview"`
	AverageConfidence float64                       `json:"averageConfidence"`
	ByFunction        map[types.PointFunction]int   `json:"byFunction"`
	ByLevel           map[types.ConfidenceLevel]int `json:"byLevel"`
}

type cacheKey struct {
	objectName    string
	equipmentType string
	vendor        string
	version       string
}

// Catalog runs the normalization and signature pipeline. Safe for
// concurrent use.
type Catalog struct {
	engine  *normalize.Engine
	builder *signature.Builder
	dict    *dictionary.Provider
	log     *zap.Logger
	workers int

	mu       sync.RWMutex
	sigCache map[cacheKey]CatalogPoint
}

// New builds a catalog over the given dictionary provider.
func New(cfg *config.Config, dict *dictionary.Provider) *Catalog {
	return &Catalog{
		engine:   normalize.NewEngine(cfg.Normalization),
		builder:  signature.NewBuilder(cfg.Signature),
		dict:     dict,
		log:      logging.Get(logging.CategoryCatalog),
		workers:  runtime.GOMAXPROCS(0),
		sigCache: make(map[cacheKey]CatalogPoint),
	}
}

// ProcessDevice normalizes and signs every point of one device. The
// dictionary snapshot is pinned once at entry, so all points of the device
// see the same dictionary even during a hot reload. Output order matches
// input order regardless of worker scheduling.
func (c *Catalog) ProcessDevice(ctx context.Context, dev Device) (*DeviceResult, error) {
	snap := c.dict.Current()
	nctx := types.NormalizationContext{
		EquipmentType: dev.EquipmentType,
		VendorName:    dev.VendorName,
	}

	points := make([]CatalogPoint, len(dev.Points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, raw := range dev.Points {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points[i] = c.processPoint(snap, raw, nctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DeviceResult{
		DeviceID: dev.DeviceID,
		Points:   points,
		Summary:  summarize(points),
	}
	c.log.Info("device processed",
		zap.String("device", dev.DeviceID),
		zap.Int("points", res.Summary.TotalPoints),
		zap.Int("needs_review", res.Summary.NeedsReview),
		zap.Float64("avg_confidence", res.Summary.AverageConfidence),
		zap.String("dictionary", snap.Version()))
	return res, nil
}

// Process handles a batch of devices. Devices run sequentially; the points
// within each device run concurrently. Results keep batch order.
func (c *Catalog) Process(ctx context.Context, devices []Device) ([]*DeviceResult, error) {
	results := make([]*DeviceResult, 0, len(devices))
	for _, dev := range devices {
		res, err := c.ProcessDevice(ctx, dev)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// processPoint runs one point through the pipeline, consulting the cache
// first. Cache entries are keyed on the object name, the normalization
// context, and the dictionary snapshot version; a dictionary reload
// naturally invalidates them.
func (c *Catalog) processPoint(snap *dictionary.Snapshot, raw types.RawPoint, nctx types.NormalizationContext) CatalogPoint {
	key := cacheKey{
		objectName:    raw.ObjectName,
		equipmentType: nctx.EquipmentType,
		vendor:        nctx.VendorName,
		version:       snap.Version(),
	}
	if raw.ObjectName != "" {
		c.mu.RLock()
		cached, ok := c.sigCache[key]
		c.mu.RUnlock()
		if ok {
			return cached
		}
	}

	np := c.engine.Normalize(snap, raw, nctx)
	cp := CatalogPoint{Normalized: np, Signature: c.builder.Build(np)}

	if raw.ObjectName != "" {
		c.mu.Lock()
		c.sigCache[key] = cp
		c.mu.Unlock()
	}
	return cp
}

func (c *Catalog) cacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sigCache)
}

func summarize(points []CatalogPoint) DeviceSummary {
	s := DeviceSummary{
		TotalPoints: len(points),
		ByFunction:  make(map[types.PointFunction]int),
		ByLevel:     make(map[types.ConfidenceLevel]int),
	}
	if len(points) == 0 {
		return s
	}
	var sum float64
	for _, p := range points {
		sum += p.Normalized.ConfidenceScore
		s.ByFunction[p.Normalized.PointFunction]++
		s.ByLevel[p.Normalized.ConfidenceLevel]++
		if p.Normalized.RequiresManualReview {
			s.NeedsReview++
		}
	}
	s.AverageConfidence = sum / float64(len(points))
	return s
}
