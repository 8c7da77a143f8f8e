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
	"net/http"
)

var (
	// BadRequest 400
	BadRequest                    = failed(http.StatusBadRequest, 4000, "Bad request")
	ValidationFailed              = failed(http.StatusBadRequest, 4001, "Validation failed")
	RequestParameterParsingFailed = failed(http.StatusBadRequest, 4002, "Request parameter parsing failed")
	CommitteeIdIsEmpty            = failed(http.StatusBadRequest, 4003, "Committee id is empty")
	CrossOrgPermission            = failed(http.StatusBadRequest, 4005, "Role and committee belong to different organizations")

	// Unauthorized 401
	Unauthorized           = failed(http.StatusUnauthorized, 4401, "Unauthorized")
	AuthenticationFailed   = failed(http.StatusUnauthorized, 4402, "Authentication failed")
	AuthorizationIncorrect = failed(http.StatusUnauthorized, 4403, "The authorization format in the request header is incorrect")
	InvalidToken           = failed(http.StatusUnauthorized, 4405, "Invalid token")
	TokenBeEmpty           = failed(http.StatusUnauthorized, 4406, "Token cannot be empty")
	TokenExpired           = failed(http.StatusUnauthorized, 4407, "Token is expired")
	SessionRevoked         = failed(http.StatusUnauthorized, 4408, "Session has been revoked")
	UserIncorrectPassword  = failed(http.StatusUnauthorized, 4409, "Incorrect email or password")
	UserDeactivated        = failed(http.StatusUnauthorized, 4410, "User is deactivated")

	// Forbidden 403
	Forbidden        = failed(http.StatusForbidden, 4030, "Forbidden")
	PermissionDenied = failed(http.StatusForbidden, 4031, "Permission denied")
	AdminRequired    = failed(http.StatusForbidden, 4032, "Organization admin required")

	// NotFound 404
	NotFound          = failed(http.StatusNotFound, 4040, "Not found")
	UserNotExist      = failed(http.StatusNotFound, 4041, "User does not exist")
	OrgNotExist       = failed(http.StatusNotFound, 4042, "Organization does not exist")
	RoleNotExist      = failed(http.StatusNotFound, 4043, "Role does not exist")
	CommitteeNotExist = failed(http.StatusNotFound, 4044, "Committee does not exist")
	TaskNotExist      = failed(http.StatusNotFound, 4045, "Task does not exist")
	UserRoleNotExist  = failed(http.StatusNotFound, 4046, "Role assignment does not exist")

	// Conflict 409
	Conflict            = failed(http.StatusConflict, 4090, "Conflict")
	OrgAlreadyExist     = failed(http.StatusConflict, 4091, "Organization already exists for this admin")
	UserAlreadyExist    = failed(http.StatusConflict, 4092, "User already exists")
	RoleNameExist       = failed(http.StatusConflict, 4093, "Role name already exists in this organization")
	CommitteeNameExist  = failed(http.StatusConflict, 4094, "Committee name already exists in this organization")
	RoleAlreadyAssigned = failed(http.StatusConflict, 4095, "Role already assigned to user")

	InternalError = failed(http.StatusInternalServerError, 5000, "Internal error, please contact the administrator")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(status, code int, msg string) *Error {
	return &Error{
		Status: status,
		Code:   code,
		Msg:    msg,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
