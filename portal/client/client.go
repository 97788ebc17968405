// Package client talks to the registration service over HTTP.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"studentportal/portal/model"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is where the registration service listens unless told otherwise.
const DefaultBaseURL = "http://localhost:5000"

const registerPath = "/api/register"

// Ack is the service's reply to a submit, and the body of any failure response.
type Ack struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NetworkError means a request could not reach the service or did not complete.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: %v", e.Op, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is or wraps a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

type Client struct {
	rc *resty.Client
}

// New returns a client for the service at baseURL. No request timeout is applied.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	rc.JSONMarshal = sonic.Marshal
	rc.JSONUnmarshal = sonic.Unmarshal

	return &Client{rc: rc}
}

// Register posts one payload. The returned Ack carries the service's message for both success and
// failure responses; an error is returned only when no message could be obtained.
func (c *Client) Register(ctx context.Context, payload map[string]interface{}) (Ack, error) {
	var ack Ack
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&ack).
		SetError(&ack).
		Post(registerPath)
	if err != nil {
		return Ack{}, &NetworkError{Op: "register", Err: err}
	}

	if ack.Message == "" && resp.IsError() {
		return Ack{}, &NetworkError{Op: "register", Status: resp.StatusCode(), Err: errors.New(resp.String())}
	}
	return ack, nil
}

// List fetches every stored record, newest first.
func (c *Client) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	var failure Ack
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&students).
		SetError(&failure).
		Get(registerPath)
	if err != nil {
		return nil, &NetworkError{Op: "list", Err: err}
	}

	if resp.IsError() {
		msg := failure.Message
		if msg == "" {
			msg = resp.String()
		}
		if failure.Error != "" {
			msg += ": " + failure.Error
		}
		return nil, &NetworkError{Op: "list", Status: resp.StatusCode(), Err: errors.New(msg)}
	}

	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}
