// Package repository stores the storefront's receipt journal in MySQL.
package repository

import "errors"

// ErrReceiptNotFound is returned when no receipt matches the lookup.
var ErrReceiptNotFound = errors.New("receipt not found")
