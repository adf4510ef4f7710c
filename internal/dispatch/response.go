package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
)

const (
	allowHeaders = "Content-Type, X-User-Id, X-Auth-Token"
	maxAge       = "86400"
)

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Success is the body of a plain write acknowledgement.
type Success struct {
	Success bool   `json:"success"`
	ID      *int64 `json:"id,omitempty"`
}

func OK() Success { return Success{Success: true} }

func Created(id int64) Success { return Success{Success: true, ID: &id} }

func JSON(status int, body interface{}) *Response {
	data, err := json.Marshal(body)
	if err != nil {
		return Error(apperror.Internal(err))
	}
	return &Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(data),
	}
}

// Error renders err with the status its kind maps to and the raw message.
func Error(err error) *Response {
	status := apperror.StatusCode(err)
	body := map[string]interface{}{"error": err.Error()}
	if status == http.StatusUnauthorized {
		body["success"] = false
	}
	data, _ := json.Marshal(body)
	return &Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(data),
	}
}

func Preflight(methods string) *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": methods,
			"Access-Control-Allow-Headers": allowHeaders,
			"Access-Control-Max-Age":       maxAge,
		},
		Body: "",
	}
}
