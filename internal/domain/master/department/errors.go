package department

import (
	"errors"
	"fmt"
)

var (
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDepartmentNameExists   = errors.New("department with this name already exists")
	ErrDepartmentHasPositions = errors.New("cannot delete department with assigned positions")
)

// HasPositionsError reports how many positions block a delete.
type HasPositionsError struct {
	Count int64
}

func (e *HasPositionsError) Error() string {
	return fmt.Sprintf("cannot delete department with %d position(s). delete or reassign them first", e.Count)
}

func (e *HasPositionsError) Unwrap() error {
	return ErrDepartmentHasPositions
}
