// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"strings"
	"time"

	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/log"
	pkgtrace "github.com/go-arcade/guild/pkg/trace"
	"github.com/gofiber/fiber/v2"
)

// paths never logged; a trailing /* matches the prefix
var accessLogSkip = []string{
	"/health",
	"/metrics",
	"/debug/pprof/*",
}

func skipAccessLog(path string) bool {
	for _, rule := range accessLogSkip {
		if prefix, ok := strings.CutSuffix(rule, "/*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == rule {
			return true
		}
	}
	return false
}

// AccessLogMiddleware writes one structured line per request, keyed by the
// request id and trace id set earlier in the chain. Server errors go out at
// warn level, everything else at debug.
func AccessLogMiddleware(httpConfig *http.Http) fiber.Handler {
	if httpConfig != nil && !httpConfig.AccessLog {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		if skipAccessLog(c.Path()) {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		requestId, _ := c.Locals(constant.REQUEST_ID).(string)
		status := statusOf(c, err)
		fields := []any{
			"requestId", requestId,
			"traceId", pkgtrace.TraceId(c.UserContext()),
			"method", c.Method(),
			"path", c.Path(),
			"route", c.Route().Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.IP(),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}
		if status >= fiber.StatusInternalServerError {
			log.Warnw("access", fields...)
		} else {
			log.Debugw("access", fields...)
		}
		return err
	}
}
