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

package http

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the success envelope. Errors use the body written by ErrorHandler.
type Response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail any    `json:"detail,omitempty"`
}

func okResponse(detail any) Response {
	return Response{Code: Success.Code, Msg: Success.Msg, Detail: detail}
}

// WithRepJSON 返回带 detail 的成功响应，保留 handler 已设置的状态码（如 201）
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.JSON(okResponse(detail))
}

// WithRepNotDetail 只返回操作结果，没有 detail 字段
func WithRepNotDetail(c *fiber.Ctx) error {
	return c.JSON(okResponse(nil))
}
