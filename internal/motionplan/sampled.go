package motionplan

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/hashicorp/go-hclog"
)

// SampledPointGraphPlanner holds N independently-sampled point-graph
// planners, each with its own memoization, indexed 0..N-1.
type SampledPointGraphPlanner struct {
	samples []*PointGraphPlanner
}

// NewSampledPointGraphPlanner builds one independent point-graph planner per
// workspace in workspaces.
func NewSampledPointGraphPlanner(workspaces []*core.Workspace, timeout time.Duration, logger hclog.Logger) *SampledPointGraphPlanner {
	samples := make([]*PointGraphPlanner, len(workspaces))
	for i, ws := range workspaces {
		samples[i] = NewPointGraphPlanner(ws, timeout, logger)
	}
	return &SampledPointGraphPlanner{samples: samples}
}

// Query runs the query against sample graph index.
func (s *SampledPointGraphPlanner) Query(index int, species *core.Species, from, to core.Configuration) (Result, error) {
	if index < 0 || index >= len(s.samples) {
		return Result{}, fmt.Errorf("motionplan: sample index %d out of range [0,%d)", index, len(s.samples))
	}
	return s.samples[index].Query(species, from, to), nil
}

// DurationQuery runs the duration query against sample graph index.
func (s *SampledPointGraphPlanner) DurationQuery(index int, species *core.Species, from, to core.Configuration) (float64, error) {
	if index < 0 || index >= len(s.samples) {
		return 0, fmt.Errorf("motionplan: sample index %d out of range [0,%d)", index, len(s.samples))
	}
	return s.samples[index].DurationQuery(species, from, to), nil
}

// IsMemoized reports memoization status for sample graph index.
func (s *SampledPointGraphPlanner) IsMemoized(index int, species *core.Species, from, to core.Configuration) bool {
	if index < 0 || index >= len(s.samples) {
		return false
	}
	return s.samples[index].IsMemoized(species, from, to)
}

// NumSamples returns N, the number of sample graphs.
func (s *SampledPointGraphPlanner) NumSamples() int { return len(s.samples) }

// scenarioView adapts one sample of a SampledPointGraphPlanner to the
// Planner interface, fixing the sample index so it can be handed to code
// that only knows about a single planner (schedule.Builder, tetaq.Evaluator).
type scenarioView struct {
	sample *PointGraphPlanner
}

func (v scenarioView) Query(species *core.Species, from, to core.Configuration) Result {
	return v.sample.Query(species, from, to)
}

func (v scenarioView) DurationQuery(species *core.Species, from, to core.Configuration) float64 {
	return v.sample.DurationQuery(species, from, to)
}

func (v scenarioView) IsMemoized(species *core.Species, from, to core.Configuration) bool {
	return v.sample.IsMemoized(species, from, to)
}

// Scenario returns a Planner bound to sample graph index, for callers that
// need to build one schedule Instance per scenario.
func (s *SampledPointGraphPlanner) Scenario(index int) (Planner, error) {
	if index < 0 || index >= len(s.samples) {
		return nil, fmt.Errorf("motionplan: sample index %d out of range [0,%d)", index, len(s.samples))
	}
	return scenarioView{sample: s.samples[index]}, nil
}
