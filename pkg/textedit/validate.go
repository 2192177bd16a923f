package textedit

import (
	"errors"
	"fmt"
	"slices"
)

// ErrConflict is returned when two changes touch overlapping ranges.
var ErrConflict = errors.New("conflicting changes")

// ValidationError describes a change that does not fit the document.
type ValidationError struct {
	Change Change
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid change %s: %s", e.Change, e.Reason)
}

// ConflictError describes two changes whose ranges overlap.
type ConflictError struct {
	First  Change
	Second Change
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("change %s overlaps %s", e.First, e.Second)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Validate checks every change against a document of the given size.
func Validate(changes []Change, size int) error {
	for _, c := range changes {
		switch {
		case c.Start < 0:
			return &ValidationError{Change: c, Reason: "negative start offset"}
		case c.End < c.Start:
			return &ValidationError{Change: c, Reason: "end before start"}
		case c.End > size:
			return &ValidationError{Change: c, Reason: fmt.Sprintf("end beyond document size %d", size)}
		}
	}
	return nil
}

// Sort orders changes by start offset, then by end offset. The sort is
// stable so insertions at the same offset keep their relative order.
func Sort(changes []Change) {
	slices.SortStableFunc(changes, func(a, b Change) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// DetectConflicts returns a conflict for every adjacent pair of sorted
// changes that overlap. Touching ranges do not conflict, except two
// insertions at the same offset.
func DetectConflicts(sorted []Change) []*ConflictError {
	var conflicts []*ConflictError
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if overlaps(prev, cur) {
			conflicts = append(conflicts, &ConflictError{First: prev, Second: cur})
		}
	}
	return conflicts
}

func overlaps(a, b Change) bool {
	if a.IsInsert() && b.IsInsert() {
		return a.Start == b.Start
	}
	return b.Start < a.End
}

// Prepare validates, copies and sorts changes so they can be applied.
func Prepare(changes []Change, size int) ([]Change, error) {
	if err := Validate(changes, size); err != nil {
		return nil, err
	}

	sorted := slices.Clone(changes)
	Sort(sorted)

	if conflicts := DetectConflicts(sorted); len(conflicts) > 0 {
		return nil, conflicts[0]
	}
	return sorted, nil
}
