// Package apperr holds the sentinel errors shared across vaultgraph packages.
package apperr

import "errors"

var (
	// ErrInvalidVault means the vault root is missing, unreadable, or not a directory.
	ErrInvalidVault = errors.New("invalid vault")
	// ErrInvalidArgument means a caller supplied an unusable option or parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
