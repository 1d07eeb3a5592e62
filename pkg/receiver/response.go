package receiver

import (
	"encoding/json"
	"net/http"
)

const (
	statusSuccess = "success"
	statusIgnored = "ignored"
	statusError   = "error"
)

// Reasons and messages returned to the webhook caller.
const (
	ReasonInvalidPayload = "Invalid JSON payload"
	ReasonMissingName    = "Form name missing"
	ReasonNotConfigured  = "Form not configured"
	ReasonDuplicate      = "Duplicate submission"

	MessageQueued        = "Email processing started"
	MessageSent          = "Email sent"
	MessageNotSent       = "Email not sent"
	MessageQueueFull     = "Dispatch queue is full"
	MessageUnavailable   = "Service unavailable"
	MessageUnauthorized  = "Invalid signature"
	MessageRateLimited   = "Too many requests"
	MessageInternalError = "Internal server error"

	IndexMessage = "Webflow Webhook Listener is running."
)

// Response is the JSON body of every webhook answer.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ignored(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusOK, Response{Status: statusIgnored, Reason: reason})
}

func success(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Status: statusSuccess, Message: message})
}

func failure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Status: statusError, Message: message})
}
