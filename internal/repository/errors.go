// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting SQL errors; the per-entity not-found errors
// stand in for sql.ErrNoRows at the package boundary.
package repository

import "errors"

// ErrPackageNotFound is returned when a tour package does not exist or is
// not visible to the caller.
var ErrPackageNotFound = errors.New("package not found")

// ErrBookingNotFound is returned when a booking does not exist, belongs to
// a different user, or is not in the state the operation requires. The
// three cases are deliberately indistinguishable to the caller.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateReview is returned when a user already reviewed a package.
var ErrDuplicateReview = errors.New("review already exists for this package")
