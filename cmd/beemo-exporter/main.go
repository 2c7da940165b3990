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

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/beemotools/beemo-exporter/internal/controller/periodicjobs"
	"github.com/beemotools/beemo-exporter/internal/httpapi/server"
	"github.com/beemotools/beemo-exporter/pkg/cache"
	"github.com/beemotools/beemo-exporter/pkg/clients/beemo"
	"github.com/beemotools/beemo-exporter/pkg/config"
	"github.com/beemotools/beemo-exporter/pkg/logger"
	"github.com/beemotools/beemo-exporter/pkg/request/httpclient"
	"github.com/beemotools/beemo-exporter/pkg/store"
	"github.com/beemotools/beemo-exporter/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("beemo-exporter terminated")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger.Init(cfg.App.Environment)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logrus.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	cacheClient, err := cache.New(&cfg.Cache)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	dataStore := store.New(cacheClient)

	portal, err := beemo.NewClient(
		&beemo.Config{
			URL:      cfg.Portal.URL,
			Username: cfg.Portal.Username,
			Password: cfg.Portal.Password,
		},
		httpclient.DefaultConnectionPoolConfig(),
		httpclient.DefaultHystrixResiliencyConfig(),
	)
	if err != nil {
		return fmt.Errorf("initializing portal client: %w", err)
	}
	if err := portal.Login(ctx); err != nil {
		return fmt.Errorf("portal login failed: %w", err)
	}

	taskManager := periodicjobs.NewPeriodicTaskManager()
	refreshJob, err := periodicjobs.NewDatasetRefreshJob(
		portal, dataStore, time.Duration(cfg.Portal.Interval)*time.Minute)
	if err != nil {
		return fmt.Errorf("initializing refresh job: %w", err)
	}
	taskManager.Register(refreshJob)

	apiServer := server.NewAPIServer(cfg, dataStore)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return taskManager.RunAll(ctx)
	})
	g.Go(func() error {
		return apiServer.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logrus.Info("beemo-exporter stopped")
	return nil
}
