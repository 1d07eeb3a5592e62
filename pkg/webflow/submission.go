package webflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Submission is a parsed form-submission webhook.
type Submission struct {
	FormName     string
	FormID       string
	SiteID       string
	SubmissionID string
	SubmittedAt  string
	Data         Fields
}

// Parse decodes a webhook body.
//
// Both the bare submission object and the envelope used by newer webhook
// versions ({"triggerType": ..., "payload": {...}}) are accepted. The form
// name is read from "name", falling back to the legacy "formName" key.
func Parse(body []byte) (Submission, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Submission{}, fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}

	obj, err := decodeObject(body)
	if err != nil {
		return Submission{}, err
	}

	if _, ok := obj["triggerType"]; ok {
		if inner, ok := obj["payload"]; ok {
			if obj, err = decodeObject(inner); err != nil {
				return Submission{}, err
			}
		}
	}

	sub := Submission{
		FormName:     str(obj, "name"),
		FormID:       str(obj, "formId"),
		SiteID:       str(obj, "siteId"),
		SubmissionID: str(obj, "id"),
		SubmittedAt:  str(obj, "submittedAt"),
	}
	if sub.FormName == "" {
		sub.FormName = str(obj, "formName")
	}
	if sub.SubmissionID == "" {
		sub.SubmissionID = str(obj, "_id")
	}

	if raw, ok := obj["data"]; ok {
		if err := json.Unmarshal(raw, &sub.Data); err != nil {
			return Submission{}, errors.Join(ErrInvalidPayload, err)
		}
	}

	if sub.FormName == "" {
		return sub, ErrMissingFormName
	}
	return sub, nil
}

func decodeObject(b []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected JSON object", ErrInvalidPayload)
	}
	return obj, nil
}

// str returns the string value stored under key, or "" when the key is
// absent or holds a non-string value.
func str(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
