package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "wicketwatch"
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

// errorMappings pairs usecase sentinels with their wire representation.
// Order matters only in that the first match wins; unmatched errors fall
// through to internalFailure.
var errorMappings = []struct {
	sentinel error
	mapped   mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrAcquisitionFailed, mappedError{http.StatusBadGateway, "acquisitionFailed", "UNAVAILABLE"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalFailure = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

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
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope(mapped, err.Error()))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, internalFailure.HTTPStatus, errorEnvelope(internalFailure, "internal server error"))
}

func errorEnvelope(mapped mappedError, message string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	}
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return m.mapped
		}
	}
	return internalFailure
}
