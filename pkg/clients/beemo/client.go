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

package beemo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/beemotools/beemo-exporter/pkg/logger"
	"github.com/beemotools/beemo-exporter/pkg/request/httpclient"
)

// ErrLoginFailed means the portal bounced the credentials. The portal does
// not answer a rejected login with a 4xx; it redirects back to the login
// page, so landing on the login URL after the form POST is the failure
// signal.
var ErrLoginFailed = errors.New("portal login rejected: landed back on the login page")

const loginPath = "/login"

// NewClient creates a portal client with a cookie jar so the authenticated
// session survives across export fetches.
func NewClient(
	cfg *Config,
	poolCfg httpclient.ConnectionPoolConfig,
	hystrixCfg httpclient.HystrixResiliencyConfig,
) (*BeemoClient, error) {
	if cfg.URL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("missing required connection parameters for beemo portal")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	// No retrier: a failed call against the portal is reported as-is.
	client, err := httpclient.InitializeClient("beemo", poolCfg, hystrixCfg, nil, 0, jar)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}

	return &BeemoClient{
		config:     cfg,
		httpClient: client,
		loginURL:   strings.TrimRight(cfg.URL, "/") + loginPath,
	}, nil
}

// Login submits the portal login form and leaves the session cookie in the
// jar. It is called once at startup; there is no re-login on expiry.
func (bc *BeemoClient) Login(ctx context.Context) error {
	log := logger.Logger(ctx).WithField("service", "beemo")
	log.Info("authenticating against the portal")

	form := url.Values{}
	form.Set("username", bc.config.Username)
	form.Set("password", bc.config.Password)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, bc.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("login request failed")
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("unexpected login response status")
		return fmt.Errorf("unexpected status %d from login", resp.StatusCode)
	}
	if resp.Request.URL.String() == bc.loginURL {
		log.Error("login rejected by the portal")
		return ErrLoginFailed
	}

	log.Info("authenticated")
	return nil
}
