package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies catalog load failures
type ErrorKind int

const (
	// NotFound means the catalog source does not exist
	NotFound ErrorKind = iota
	// Malformed means the source exists but could not be parsed or validated
	Malformed
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// CatalogError is returned by Load
type CatalogError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *CatalogError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("catalog %s not found: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("catalog %s is malformed: %v", e.Source, e.Err)
	}
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a catalog NotFound error
func IsNotFound(err error) bool {
	var ce *CatalogError
	return errors.As(err, &ce) && ce.Kind == NotFound
}

// IsMalformed reports whether err is a catalog Malformed error
func IsMalformed(err error) bool {
	var ce *CatalogError
	return errors.As(err, &ce) && ce.Kind == Malformed
}
