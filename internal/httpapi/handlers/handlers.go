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

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beemotools/beemo-exporter/pkg/logger"
	"github.com/beemotools/beemo-exporter/pkg/store"
)

type Handlers struct {
	store store.Interface
}

func NewHandlers(dataStore store.Interface) *Handlers {
	return &Handlers{store: dataStore}
}

// DownloadDataset serves the cached CSV for one dataset as an attachment.
// Until the first successful refresh the dataset answers 503.
func (h *Handlers) DownloadDataset(name string) gin.HandlerFunc {
	filename := name + ".csv"

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		csvText, ok, err := h.store.Get(ctx, name)
		if err != nil {
			logger.Logger(ctx).WithField("dataset", name).WithError(err).
				Error("failed to read dataset from cache")
			c.String(http.StatusServiceUnavailable, "Service unavailable")
			return
		}
		if !ok {
			c.String(http.StatusServiceUnavailable, "Service unavailable")
			return
		}

		payload := []byte(csvText)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Header("Content-Length", strconv.Itoa(len(payload)))
		c.Data(http.StatusOK, "text/csv", payload)
	}
}

// NotFound answers every unknown path with a plain-text 404.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not found")
}
