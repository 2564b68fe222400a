// Package models pkg/models/errors.go provides shared validation errors.
package models

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidStatus   = errors.New("invalid status")
)
