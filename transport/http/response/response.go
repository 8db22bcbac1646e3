// Package response renders the JSON envelopes every handler replies with.
// Successful payloads go under "data", failures under "error" and plain
// notices under "message", so clients can switch on the shape alone.
package response

import (
	"encoding/json"
	"net/http"

	"nestling/shared/constant"
	"nestling/shared/failure"
	"nestling/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage replies with a plain text notice.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON replies with a payload wrapped in the data envelope.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError replies with the error's message, using the status code the
// failure package derived for it.
func WithError(writer http.ResponseWriter, err error) {
	errMsg := err.Error()

	write(writer, failure.GetCode(err), Error{Error: &errMsg})
}

// WithRequestLimitExceeded replies 429 when the rate limiter rejects a client.
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown replies 503 while the server drains in-flight work.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy replies 503 when a health probe fails.
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
