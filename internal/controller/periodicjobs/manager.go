/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package periodicjobs provides the ticker-driven background jobs of the
// exporter and the manager that runs them.
package periodicjobs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beemotools/beemo-exporter/pkg/logger"
)

// PeriodicJob is a named task the manager runs once at startup and then on a
// fixed interval.
type PeriodicJob interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

type PeriodicTaskManager struct {
	jobs []PeriodicJob
}

func NewPeriodicTaskManager() *PeriodicTaskManager {
	return &PeriodicTaskManager{}
}

func (m *PeriodicTaskManager) Register(job PeriodicJob) {
	m.jobs = append(m.jobs, job)
}

// RunAll starts every registered job and blocks until the context is
// canceled and all jobs have stopped. A job that fails stops its own
// schedule without affecting the others or the caller; the rest of the
// process keeps running on whatever state the job last produced.
func (m *PeriodicTaskManager) RunAll(ctx context.Context) error {
	var g errgroup.Group
	for _, job := range m.jobs {
		g.Go(func() error {
			m.runJob(ctx, job)
			return nil
		})
	}
	return g.Wait()
}

func (m *PeriodicTaskManager) runJob(ctx context.Context, job PeriodicJob) {
	log := logger.Logger(ctx).WithField("job", job.Name())
	log.WithField("interval", job.Interval().String()).Info("starting periodic job")

	if err := job.Run(ctx); err != nil {
		log.WithError(err).Error("periodic job failed, stopping its schedule")
		return
	}

	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping periodic job")
			return
		case <-ticker.C:
			if err := job.Run(ctx); err != nil {
				log.WithError(err).Error("periodic job failed, stopping its schedule")
				return
			}
		}
	}
}
