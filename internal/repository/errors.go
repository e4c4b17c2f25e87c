// Package repository implements reservation storage.  Every store honours
// the same contract: Save inserts or overwrites by id and returns the
// stored value, FindByID reports absence through its bool result rather
// than an error, and FindAll returns a snapshot in no particular order.
// Errors are reserved for backend failures.
package repository

import "errors"

// ErrCorruptRecord is returned when a persisted row or cache entry cannot
// be turned back into a reservation (for example an unknown status).
var ErrCorruptRecord = errors.New("corrupt reservation record")
