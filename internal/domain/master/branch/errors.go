package branch

import "errors"

var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrBranchNameExists   = errors.New("branch with this name already exists")
	ErrBranchHasEmployees = errors.New("cannot delete branch with assigned employees")
)
