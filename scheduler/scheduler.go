// Package scheduler drives the computation of transmission schedules. It runs
// the stages of package tdma one after the other, logs their progress, refuses
// problems that are too large and optionally validates the result.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rhartert/meshtdma/tdma"
	"github.com/rs/xid"
)

// ErrTooManyInstances is returned when the number of transmission instances
// exceeds Config.MaxInstances.
var ErrTooManyInstances = errors.New("scheduler: too many transmission instances")

type Config struct {
	// MaxInstances is the maximum number of transmission instances a
	// computation accepts. Building the interference graph is quadratic in
	// the number of instances, which grows with both the fan-out of the
	// topology and the generation rates. The limit is checked before the
	// graph is built. Zero means no limit.
	MaxInstances int

	// Verify controls whether every plan is checked with tdma.Validate
	// before being returned.
	Verify bool

	// Log receives one debug record per stage and an info record per
	// computed schedule. A nil logger discards everything.
	Log *slog.Logger
}

// Stats summarizes a computed schedule.
type Stats struct {
	Devices   int `json:"devices" yaml:"devices"`
	Links     int `json:"links" yaml:"links"`
	Instances int `json:"instances" yaml:"instances"`
	Conflicts int `json:"conflicts" yaml:"conflicts"`
	Slots     int `json:"slots" yaml:"slots"`
	Channels  int `json:"channels" yaml:"channels"`
}

// Result is the outcome of one computation.
type Result struct {
	// ID identifies the computation in log records.
	ID       string
	Plan     *tdma.Plan
	Schedule tdma.Schedule
	Stats    Stats
}

type Scheduler struct {
	Cfg Config

	log *slog.Logger
}

// New returns a scheduler configured with cfg.
func New(cfg Config) *Scheduler {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{Cfg: cfg, log: log}
}

// Run computes the schedule of the topology as it is when Run is called.
func (s *Scheduler) Run(ctx context.Context, topo *tdma.Topology) (*Result, error) {
	return s.RunSnapshot(ctx, topo.Snapshot())
}

// RunSnapshot computes the schedule of a snapshot. The context is checked
// after each stage; a stage that has started always runs to completion.
func (s *Scheduler) RunSnapshot(ctx context.Context, snap *tdma.Snapshot) (*Result, error) {
	id := xid.New().String()
	log := s.log.With("run", id)
	start := time.Now()

	log.Debug("Computing schedule", "devices", snap.NumDevices(), "links", len(snap.Links))

	plan, err := tdma.ComputeFunc(snap, func(stage tdma.Stage, p *tdma.Plan, took time.Duration) error {
		switch stage {
		case tdma.StageRequirements:
			total := p.Requirements.Total()
			log.Debug("Computed forwarding requirements", "transmissions", total, "took", took)
			if limit := s.Cfg.MaxInstances; limit > 0 && total > limit {
				return fmt.Errorf("%w: %d > %d", ErrTooManyInstances, total, limit)
			}
		case tdma.StageDistances:
			log.Debug("Computed hop distances", "took", took)
		case tdma.StageInterference:
			log.Debug("Built interference graph", "instances", p.Graph.Len(), "conflicts", p.Graph.NumEdges(), "took", took)
		case tdma.StageSlots:
			log.Debug("Assigned slots", "slots", p.Slots.NumSlots, "took", took)
		case tdma.StageChannels:
			log.Debug("Packed channels", "took", took)
		}
		return ctx.Err()
	})
	if err != nil {
		log.Info("Cannot compute schedule", "err", err)
		return nil, fmt.Errorf("computing schedule: %w", err)
	}

	if s.Cfg.Verify {
		if err := tdma.Validate(plan); err != nil {
			log.Error("Computed an invalid schedule", "err", err)
			return nil, err
		}
	}

	schedule := plan.Schedule()
	res := &Result{
		ID:       id,
		Plan:     plan,
		Schedule: schedule,
		Stats: Stats{
			Devices:   snap.NumDevices(),
			Links:     len(snap.Links),
			Instances: plan.Graph.Len(),
			Conflicts: plan.Graph.NumEdges(),
			Slots:     len(schedule),
			Channels:  schedule.NumChannels(),
		},
	}

	log.Info(
		"Computed schedule",
		"instances", res.Stats.Instances,
		"slots", res.Stats.Slots,
		"channels", res.Stats.Channels,
		"took", time.Since(start),
	)
	return res, nil
}
