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

package periodicjobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beemotools/beemo-exporter/pkg/datasets"
	"github.com/beemotools/beemo-exporter/pkg/logger"
	"github.com/beemotools/beemo-exporter/pkg/store"
	"github.com/beemotools/beemo-exporter/pkg/telemetry"
)

// DatasetRefreshJobName is the unique identifier of the dataset refresh job.
const DatasetRefreshJobName = "dataset_refresh"

// ExportFetcher downloads one raw export over the authenticated portal
// session.
type ExportFetcher interface {
	FetchExport(ctx context.Context, exportPath string) ([]byte, error)
}

// DatasetRefreshJob downloads the three portal exports in a fixed order,
// reshapes each one and replaces its cached CSV individually, so readers can
// observe a partially refreshed cache mid-cycle.
type DatasetRefreshJob struct {
	portal      ExportFetcher
	store       store.Interface
	definitions map[string]datasets.Definition
	interval    time.Duration
	metrics     *telemetry.RefreshMetrics
}

func NewDatasetRefreshJob(
	portal ExportFetcher,
	dataStore store.Interface,
	interval time.Duration,
) (*DatasetRefreshJob, error) {
	definitions, err := datasets.LoadDefinitions()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset definitions: %w", err)
	}

	metrics, err := telemetry.NewRefreshMetrics(telemetry.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh metrics: %w", err)
	}

	return &DatasetRefreshJob{
		portal:      portal,
		store:       dataStore,
		definitions: definitions,
		interval:    interval,
		metrics:     metrics,
	}, nil
}

func (j *DatasetRefreshJob) Name() string {
	return DatasetRefreshJobName
}

func (j *DatasetRefreshJob) Interval() time.Duration {
	return j.interval
}

// Run refreshes all datasets once. The first failure aborts the cycle:
// already-refreshed datasets stay published, the remaining ones keep their
// previous content.
func (j *DatasetRefreshJob) Run(ctx context.Context) error {
	log := logger.Logger(ctx).WithField("job", DatasetRefreshJobName)
	start := time.Now()

	for _, name := range datasets.Names {
		if err := j.refreshDataset(ctx, name); err != nil {
			j.metrics.RecordCycle(ctx, time.Since(start), false)
			return err
		}
	}

	j.metrics.RecordCycle(ctx, time.Since(start), true)
	log.WithField("elapsed", time.Since(start).String()).Info("refresh cycle completed")
	return nil
}

func (j *DatasetRefreshJob) refreshDataset(ctx context.Context, name string) error {
	def := j.definitions[name]

	raw, err := j.portal.FetchExport(ctx, def.ExportPath)
	if err != nil {
		return fmt.Errorf("fetching %s export: %w", name, err)
	}

	csvText, err := datasets.Transforms[name](def, raw)
	if err != nil {
		return fmt.Errorf("transforming %s export: %w", name, err)
	}

	if err := j.store.Set(ctx, name, csvText); err != nil {
		return fmt.Errorf("caching %s dataset: %w", name, err)
	}

	rows := strings.Count(csvText, "\n") - 1
	j.metrics.RecordDataset(ctx, name, len(csvText), rows)
	logger.Logger(ctx).WithFields(logrus.Fields{
		"dataset": name,
		"bytes":   len(csvText),
		"rows":    rows,
	}).Info("dataset refreshed")
	return nil
}
