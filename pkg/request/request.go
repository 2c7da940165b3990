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

// Package request wraps outbound HTTP calls with shared logging around the
// heimdall client.
package request

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gojek/heimdall/v7"
	"github.com/sirupsen/logrus"

	"github.com/beemotools/beemo-exporter/pkg/logger"
)

type Request struct {
	req *http.Request
}

func NewRequest(ctx context.Context, method, url string, body []byte) (*Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Request{req: req}, nil
}

func (r *Request) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.req.Header.Set(key, value)
	}
}

// MakeRequest executes the request and returns the response body and status
// code. The operation name is only used for logging.
func (r *Request) MakeRequest(client heimdall.Doer, operation, backend string) ([]byte, int, error) {
	log := logger.Logger(r.req.Context()).WithFields(logrus.Fields{
		"operation": operation,
		"backend":   backend,
		"url":       r.req.URL.String(),
	})

	resp, err := client.Do(r.req)
	if err != nil {
		log.WithError(err).Error("request failed")
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("failed to read response body")
		return nil, resp.StatusCode, err
	}

	log.WithField("status", resp.StatusCode).Debug("request completed")
	return body, resp.StatusCode, nil
}
