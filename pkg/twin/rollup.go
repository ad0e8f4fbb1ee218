package twin

import (
	"encoding/json"

	"github.com/twinstack/asset-twin-service/pkg/models"
	"gorm.io/datatypes"
)

// rollup is one running aggregate for a (node, metric) pair. Sum and Count
// carry Avg; Min/Max hold the current extremum; Last holds the most recent
// arrival. Seen marks whether anything was ever folded in.
type rollup struct {
	Method models.AggregationMethod
	Sum    float64
	Count  float64
	Min    float64
	Max    float64
	Last   float64
	Seen   bool
}

func jsonNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func rollupFrom(m datatypes.JSONMap, metric string, method models.AggregationMethod) rollup {
	r := rollup{Method: method}
	if m == nil {
		return r
	}
	raw, ok := m[metric].(map[string]any)
	if !ok {
		return r
	}
	if s, ok := raw["method"].(string); ok && s != "" {
		r.Method = models.AggregationMethod(s)
	}
	r.Sum = jsonNumber(raw["sum"])
	r.Count = jsonNumber(raw["count"])
	r.Min = jsonNumber(raw["min"])
	r.Max = jsonNumber(raw["max"])
	r.Last = jsonNumber(raw["last"])
	if b, ok := raw["seen"].(bool); ok {
		r.Seen = b
	}
	return r
}

func (r rollup) store(m datatypes.JSONMap, metric string) {
	m[metric] = map[string]any{
		"method": string(r.Method),
		"sum":    r.Sum,
		"count":  r.Count,
		"min":    r.Min,
		"max":    r.Max,
		"last":   r.Last,
		"seen":   r.Seen,
	}
}

// fold applies one arrival to the running aggregate.
func (r *rollup) fold(v float64) {
	switch r.Method {
	case models.AggregationSum:
		r.Sum += v
	case models.AggregationCount:
		r.Count++
	case models.AggregationAvg:
		r.Sum += v
		r.Count++
	case models.AggregationMin:
		if !r.Seen || v < r.Min {
			r.Min = v
		}
	case models.AggregationMax:
		if !r.Seen || v > r.Max {
			r.Max = v
		}
	default:
		r.Last = v
	}
	r.Seen = true
}

func (r rollup) calculated() float64 {
	switch r.Method {
	case models.AggregationSum:
		return r.Sum
	case models.AggregationCount:
		return r.Count
	case models.AggregationAvg:
		if r.Count == 0 {
			return 0
		}
		return r.Sum / r.Count
	case models.AggregationMin:
		return r.Min
	case models.AggregationMax:
		return r.Max
	default:
		return r.Last
	}
}

// merge combines another running aggregate over a disjoint set of arrivals
// into this one. Used only by the bounded re-derivation after structural
// changes; per-update propagation uses fold.
func (r *rollup) merge(other rollup) {
	if !other.Seen {
		return
	}
	if r.Method == "" {
		r.Method = other.Method
	}
	switch r.Method {
	case models.AggregationMin:
		if !r.Seen || other.Min < r.Min {
			r.Min = other.Min
		}
	case models.AggregationMax:
		if !r.Seen || other.Max > r.Max {
			r.Max = other.Max
		}
	default:
		r.Sum += other.Sum
		r.Count += other.Count
		if !r.Seen {
			r.Last = other.Last
		}
	}
	r.Seen = true
}

// mergeRollupMaps re-derives a node's subtree aggregates from its own
// arrivals plus the direct children's subtree aggregates.
func mergeRollupMaps(own datatypes.JSONMap, children []datatypes.JSONMap) datatypes.JSONMap {
	merged := datatypes.JSONMap{}

	metrics := map[string]bool{}
	for metric := range own {
		metrics[metric] = true
	}
	for _, child := range children {
		for metric := range child {
			metrics[metric] = true
		}
	}

	for metric := range metrics {
		r := rollupFrom(own, metric, "")
		for _, child := range children {
			r.merge(rollupFrom(child, metric, ""))
		}
		r.store(merged, metric)
	}
	return merged
}
