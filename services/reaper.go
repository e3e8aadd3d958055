package services

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// SweepResult summarizes one maintenance pass.
type SweepResult struct {
	ExpiredGroups int          `json:"expired_groups"`
	MergedPairs   []MergedPair `json:"merged_pairs,omitempty"`
}

// Reaper periodically expires overdue bookings and merges compatible
// groups. The schedule comes from a cron spec, e.g. "@every 5m".
type Reaper struct {
	Groups *GroupService

	cron *cron.Cron
}

// NewReaper builds a reaper around the group service.
func NewReaper(groups *GroupService) *Reaper {
	return &Reaper{Groups: groups, cron: cron.New()}
}

// Start registers the sweep on the schedule and starts the cron loop.
func (r *Reaper) Start(spec string) error {
	_, err := r.cron.AddFunc(spec, func() {
		if _, err := r.RunOnce(context.Background()); err != nil {
			log.Printf("⚠️ Maintenance sweep finished with errors: %v", err)
		}
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("⏰ Maintenance sweep scheduled: %s", spec)
	return nil
}

// Stop halts the cron loop. Running sweeps finish.
func (r *Reaper) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// RunOnce executes one full sweep: booking expiry first, then merging, so a
// group never merges and expires in the same pass.
func (r *Reaper) RunOnce(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	var errs error

	expired, err := r.Groups.ExpireSweep(ctx)
	result.ExpiredGroups = expired
	errs = multierr.Append(errs, err)

	merged, err := r.Groups.MergeCompatible(ctx)
	result.MergedPairs = merged
	errs = multierr.Append(errs, err)

	if result.ExpiredGroups > 0 || len(result.MergedPairs) > 0 {
		log.Printf("🧹 Sweep done: %d groups expired, %d merges", result.ExpiredGroups, len(result.MergedPairs))
	}
	return result, errs
}
