package loop

import (
	"time"

	"github.com/tomz197/skyshooter/internal/loop/config"
)

// job is a periodic action driven by the simulation clock.
type job struct {
	name     string
	interval time.Duration
	next     time.Time
	run      func()
}

// Scheduler fires periodic jobs from the frame loop instead of wall-clock
// timers, so spawning follows whatever Clock the game uses.
type Scheduler struct {
	jobs   []*job
	paused func() bool
}

// NewScheduler creates a scheduler. While paused reports true, Run skips every
// job and no backlog builds up.
func NewScheduler(paused func() bool) *Scheduler {
	return &Scheduler{paused: paused}
}

// Every registers fn to run once per interval, first at now+interval.
func (s *Scheduler) Every(name string, interval time.Duration, now time.Time, fn func()) {
	s.jobs = append(s.jobs, &job{name: name, interval: interval, next: now.Add(interval), run: fn})
}

// Run fires each due job once per elapsed interval, at most config.MaxCatchUp
// times per call. Jobs further behind are re-armed relative to now.
func (s *Scheduler) Run(now time.Time) {
	for _, j := range s.jobs {
		if s.paused != nil && s.paused() {
			// Keep timers moving so resuming does not fire a burst.
			if !j.next.After(now) {
				j.next = now.Add(j.interval)
			}
			continue
		}
		fired := 0
		for !j.next.After(now) {
			if fired == config.MaxCatchUp {
				j.next = now.Add(j.interval)
				break
			}
			j.run()
			fired++
			j.next = j.next.Add(j.interval)
		}
	}
}

// Reset re-arms every job to fire one interval after now.
func (s *Scheduler) Reset(now time.Time) {
	for _, j := range s.jobs {
		j.next = now.Add(j.interval)
	}
}

// Next returns when the named job fires next.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	for _, j := range s.jobs {
		if j.name == name {
			return j.next, true
		}
	}
	return time.Time{}, false
}
