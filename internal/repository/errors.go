package repository

import "errors"

// Common repository errors
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTimeEntryNotFound   = errors.New("time entry not found")
	ErrBoardNotFound       = errors.New("board not found")
	ErrTaskNotFound        = errors.New("task not found")
)
