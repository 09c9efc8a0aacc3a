// Package poller reflects server-side long-running job progress without
// push notifications: a fixed-interval re-fetch that is only active while
// the project is in an in-progress status and stops as soon as it leaves
// those states.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// State is the poller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateStopped
)

// pollingEligible are the statuses that keep the poller active.
var pollingEligible = map[string]bool{
	"queued":     true,
	"processing": true,
}

// Eligible reports whether a project status warrants continued polling.
func Eligible(status string) bool { return pollingEligible[status] }

// FetchFunc fetches the current status once. It returns the new status
// string; an error is logged and polling continues (transient failures
// should not kill a watch).
type FetchFunc func(ctx context.Context) (string, error)

// Poller re-invokes a fetch on a fixed interval while the status is
// polling-eligible.
type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	state    State
}

// New creates an idle poller.
func New(interval time.Duration, fetch FetchFunc) *Poller {
	return &Poller{interval: interval, fetch: fetch, state: StateIdle}
}

// State returns the current lifecycle state.
func (p *Poller) State() State { return p.state }

// Run polls until the status leaves the polling-eligible set or ctx is
// done, then returns the final observed status. The initial fetch happens
// immediately; subsequent fetches wait one interval.
func (p *Poller) Run(ctx context.Context) (string, error) {
	p.state = StateActive
	defer func() { p.state = StateStopped }()

	status, err := p.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Status fetch failed, will retry")
	} else if !Eligible(status) {
		return status, nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
			s, err := p.fetch(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Status fetch failed, will retry")
				continue
			}
			status = s
			if !Eligible(status) {
				return status, nil
			}
		}
	}
}
