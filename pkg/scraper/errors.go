package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType categorizes different types of scraper errors
type ErrorType string

const (
	ErrorTypeServiceUnavailable ErrorType = "service_unavailable"
	ErrorTypeTimeout            ErrorType = "timeout"
	ErrorTypeNetwork            ErrorType = "network"
	ErrorTypeInvalidURL         ErrorType = "invalid_url"
	ErrorTypeInvalidResponse    ErrorType = "invalid_response"
	ErrorTypeCancelled          ErrorType = "cancelled"
	ErrorTypeMatchFailed        ErrorType = "match_failed"
)

// ErrScrapeInProgress is returned when a session is asked to run while
// another scrape is still active.
var ErrScrapeInProgress = errors.New("a scrape is already in progress")

// ScraperError represents a structured error from the scraper service
type ScraperError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *ScraperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *ScraperError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message
func (e *ScraperError) UserMessage() string {
	switch e.Type {
	case ErrorTypeServiceUnavailable:
		return "Scraper service unavailable. Please check if the service is running."
	case ErrorTypeTimeout:
		return "Scraping timed out. The store may be large or the service may be busy."
	case ErrorTypeNetwork:
		return "Network error occurred while scraping. Please check your connection and try again."
	case ErrorTypeInvalidURL:
		return fmt.Sprintf("Invalid URL: %s", e.Message)
	case ErrorTypeInvalidResponse:
		if e.StatusCode != 0 {
			return e.Message
		}
		return "Received invalid response from scraper service. Please try again."
	case ErrorTypeCancelled:
		return "Scraping was cancelled."
	case ErrorTypeMatchFailed:
		return fmt.Sprintf("Matching against supplier failed: %s", e.Message)
	default:
		return e.Message
	}
}

// UserMessage returns a friendly message for any error, unwrapping
// ScraperError where present.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var scraperErr *ScraperError
	if errors.As(err, &scraperErr) {
		return scraperErr.UserMessage()
	}
	return err.Error()
}

// classifyTransportError maps an error from http.Client.Do or a body read
// into a ScraperError.
func classifyTransportError(err error) *ScraperError {
	var scraperErr *ScraperError
	if errors.As(err, &scraperErr) {
		return scraperErr
	}
	if errors.Is(err, context.Canceled) {
		return newCancelledError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return newServiceUnavailableError(err)
	}
	return newNetworkError(err)
}

func newServiceUnavailableError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeServiceUnavailable,
		Message: "Service not available",
		Cause:   cause,
	}
}

func newTimeoutError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeTimeout,
		Message: "Request timed out",
		Cause:   cause,
	}
}

func newNetworkError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeNetwork,
		Message: "Network error",
		Cause:   cause,
	}
}

func newInvalidResponseError(message string, cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeInvalidResponse,
		Message: message,
		Cause:   cause,
	}
}

func newHTTPStatusError(status int, body string) *ScraperError {
	t := ErrorTypeInvalidResponse
	if status == 502 || status == 503 || status == 504 {
		t = ErrorTypeServiceUnavailable
	}
	msg := fmt.Sprintf("API error: %d", status)
	if body != "" {
		msg = fmt.Sprintf("API error: %d: %s", status, body)
	}
	return &ScraperError{
		Type:       t,
		Message:    msg,
		StatusCode: status,
	}
}

func newCancelledError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeCancelled,
		Message: "Operation cancelled",
		Cause:   cause,
	}
}

func newMatchFailedError(cause error) *ScraperError {
	msg := "title matching failed"
	var scraperErr *ScraperError
	if errors.As(cause, &scraperErr) {
		msg = scraperErr.UserMessage()
	}
	return &ScraperError{
		Type:    ErrorTypeMatchFailed,
		Message: msg,
		Cause:   cause,
	}
}
