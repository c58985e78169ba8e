package apperrors

import "fmt"

// ErrDataSource represents an error when the oshi data source cannot be read.
type ErrDataSource struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *ErrDataSource) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data source %s unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("data source %s unavailable", e.Source)
}

// Unwrap returns the underlying cause.
func (e *ErrDataSource) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrDataSource) Is(target error) bool {
	_, ok := target.(*ErrDataSource)
	return ok
}

// NewDataSourceError creates a new ErrDataSource.
func NewDataSourceError(source string, err error) *ErrDataSource {
	return &ErrDataSource{
		Source: source,
		Err:    err,
	}
}

// ErrMalformedData is returned when the data document is not a JSON array of oshi records.
type ErrMalformedData struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *ErrMalformedData) Error() string {
	return fmt.Sprintf("malformed oshi data in %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *ErrMalformedData) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedData) Is(target error) bool {
	_, ok := target.(*ErrMalformedData)
	return ok
}

// NewMalformedDataError creates a new ErrMalformedData.
func NewMalformedDataError(source string, err error) *ErrMalformedData {
	return &ErrMalformedData{
		Source: source,
		Err:    err,
	}
}

// ErrInvalidStartDate is returned when a record's start date cannot be parsed.
type ErrInvalidStartDate struct {
	OrderID int
	Value   string
}

// Error implements the error interface.
func (e *ErrInvalidStartDate) Error() string {
	return fmt.Sprintf("oshi %d has invalid start date %q", e.OrderID, e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidStartDate) Is(target error) bool {
	_, ok := target.(*ErrInvalidStartDate)
	return ok
}
