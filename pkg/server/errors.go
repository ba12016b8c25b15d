// Copyright (c) 2025, The MathStaticCompiler Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/serializer"
)

// WriteError writes an ErrorResponse, honoring the request's Accept header.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code mscerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.Respond(w, r, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. A StructuredError keeps
// its code, message and context, with the cause under details["error"].
// Other errors are reported with fallbackMessage as internal, timeout or
// canceled depending on the chain.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *mscerrors.StructuredError
	if stderrors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	code := mscerrors.ErrCodeInternal
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		code = mscerrors.ErrCodeTimeout
	case stderrors.Is(err, context.Canceled):
		code = mscerrors.ErrCodeCanceled
	}

	var details map[string]any
	if err != nil {
		details = mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	} else {
		details = mergeDetails(extraDetails, nil)
	}
	WriteError(w, r, HTTPStatusFromCode(code), code, fallbackMessage, retryableFromCode(code), details)
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code mscerrors.ErrorCode) int {
	switch code {
	case mscerrors.ErrCodeInvalidRequest, mscerrors.ErrCodeUnknownLiteral, mscerrors.ErrCodeParse,
		mscerrors.ErrCodeInvalidRecipe:
		return http.StatusBadRequest
	case mscerrors.ErrCodeUnboundVariable, mscerrors.ErrCodeControlFlow:
		return http.StatusUnprocessableEntity
	case mscerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case mscerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case mscerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case mscerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case mscerrors.ErrCodeCanceled:
		// nginx's non-standard "client closed request"
		return 499
	case mscerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code mscerrors.ErrorCode) bool {
	switch code {
	case mscerrors.ErrCodeTimeout, mscerrors.ErrCodeUnavailable, mscerrors.ErrCodeRateLimitExceeded,
		mscerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries over a's, or nil when both
// are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
