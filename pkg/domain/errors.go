package domain

import (
	"errors"
	"strings"
)

// Rate acquisition errors. Fetchers wrap one of these so callers can classify
// a failure with errors.Is.
var (
	// ErrNetworkFailure is returned when the remote endpoint could not be reached,
	// timed out or answered with a non-success status.
	ErrNetworkFailure = errors.New("network failure")
	// ErrMalformedResponse is returned when the remote payload cannot be decoded
	// or lacks a required field.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrEmptyResult is returned when the remote endpoint answered with no data.
	ErrEmptyResult = errors.New("empty result")
)

// Calculation errors
var (
	// ErrDivisionByZero is returned when the market rate is zero.
	ErrDivisionByZero = errors.New("market rate must not be zero")
	// ErrNegativePrice is returned when the price in USD is below zero or not a number.
	ErrNegativePrice = errors.New("price must be a finite non-negative number")
	// ErrInvalidRate is returned for negative, NaN or infinite rates.
	ErrInvalidRate = errors.New("rate must be a finite non-negative number")
	// ErrRateRequired is returned when a rate could not be fetched and no manual
	// value was supplied.
	ErrRateRequired = errors.New("rate required")
)

// MissingRatesError names the rates that need manual entry.
type MissingRatesError struct {
	Official bool
	Market   bool
}

func (e *MissingRatesError) Error() string {
	var missing []string
	if e.Official {
		missing = append(missing, "official")
	}
	if e.Market {
		missing = append(missing, "market")
	}
	return ErrRateRequired.Error() + ": " + strings.Join(missing, ", ")
}

// Unwrap lets errors.Is match ErrRateRequired.
func (e *MissingRatesError) Unwrap() error {
	return ErrRateRequired
}
