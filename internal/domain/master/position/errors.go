package position

import "errors"

var (
	ErrPositionNotFound     = errors.New("position not found")
	ErrPositionNameExists   = errors.New("position with this name already exists")
	ErrPositionHasEmployees = errors.New("cannot delete position with assigned employees")
)
