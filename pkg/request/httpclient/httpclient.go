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

// Package httpclient centralizes construction of heimdall hystrix clients so
// every outbound call shares the same connection pool and circuit breaker
// settings.
package httpclient

import (
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/hystrix"
)

// ConnectionPoolConfig tunes the shared transport behind a client.
type ConnectionPoolConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// HystrixResiliencyConfig tunes the circuit breaker wrapped around a client.
type HystrixResiliencyConfig struct {
	Timeout                time.Duration
	MaxConcurrentRequests  int
	ErrorPercentThreshold  int
	RequestVolumeThreshold int
	SleepWindow            time.Duration
}

// DefaultConnectionPoolConfig suits the portal's slow CSV exports: generous
// request timeout, small idle pool.
func DefaultConnectionPoolConfig() ConnectionPoolConfig {
	return ConnectionPoolConfig{
		Timeout:             2 * time.Minute,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
}

func DefaultHystrixResiliencyConfig() HystrixResiliencyConfig {
	return HystrixResiliencyConfig{
		Timeout:                2 * time.Minute,
		MaxConcurrentRequests:  10,
		ErrorPercentThreshold:  50,
		RequestVolumeThreshold: 10,
		SleepWindow:            10 * time.Second,
	}
}

// InitializeClient builds a hystrix-wrapped heimdall client. The cookie jar
// is optional; pass one when the backend keeps a cookie-based session.
func InitializeClient(
	commandName string,
	poolCfg ConnectionPoolConfig,
	hystrixCfg HystrixResiliencyConfig,
	retrier heimdall.Retriable,
	retryCount int,
	jar http.CookieJar,
) (*hystrix.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        poolCfg.MaxIdleConns,
		MaxIdleConnsPerHost: poolCfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     poolCfg.IdleConnTimeout,
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   poolCfg.Timeout,
		Jar:       jar,
	}

	if retrier == nil {
		retrier = heimdall.NewNoRetrier()
	}

	client := hystrix.NewClient(
		hystrix.WithHTTPClient(httpClient),
		hystrix.WithCommandName(commandName),
		hystrix.WithHystrixTimeout(hystrixCfg.Timeout),
		hystrix.WithMaxConcurrentRequests(hystrixCfg.MaxConcurrentRequests),
		hystrix.WithErrorPercentThreshold(hystrixCfg.ErrorPercentThreshold),
		hystrix.WithRequestVolumeThreshold(hystrixCfg.RequestVolumeThreshold),
		hystrix.WithSleepWindow(int(hystrixCfg.SleepWindow/time.Millisecond)),
		hystrix.WithRetrier(retrier),
		hystrix.WithRetryCount(retryCount),
	)
	return client, nil
}
