package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-contests"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  errorItems(ctx, err, mapped),
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// errorItems expands validation errors that carry multiple violations into
// one error item per violation, so clients see every problem at once.
func errorItems(ctx context.Context, err error, mapped mappedError) []googleErrorItem {
	ctx, span := startSpan(ctx, "httpapi.errorItems")
	defer span.End()

	var composition *roster.CompositionError
	if errors.As(err, &composition) {
		items := make([]googleErrorItem, 0, len(composition.Violations))
		for _, v := range composition.Violations {
			items = append(items, googleErrorItem{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: v.String(),
			})
		}
		return items
	}

	var allowed *enrollment.AllowedTeamsError
	if errors.As(err, &allowed) {
		items := make([]googleErrorItem, 0, len(allowed.PlayerNames))
		for _, name := range allowed.PlayerNames {
			items = append(items, googleErrorItem{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: "player " + name + " is outside the contest's allowed teams",
			})
		}
		return items
	}

	return []googleErrorItem{
		{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: err.Error(),
		},
	}
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var composition *roster.CompositionError
	var allowed *enrollment.AllowedTeamsError

	switch {
	case errors.As(err, &composition):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "compositionRejected",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.As(err, &allowed):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "allowedTeamsViolation",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, roster.ErrCaptainNotSelected),
		errors.Is(err, roster.ErrViceCaptainNotSelected),
		errors.Is(err, roster.ErrCaptainEqualsViceCaptain):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidCaptaincy",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrInvalidState):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidLifecycleState",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "ABORTED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
