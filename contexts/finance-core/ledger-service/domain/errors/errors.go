package errors

import "errors"

var (
	ErrUnknownRole             = errors.New("unknown caller role")
	ErrMasterReadOnly          = errors.New("master profile only views the ledger")
	ErrNotFoundOrForbidden     = errors.New("transaction not found or not owned by caller")
	ErrInvalidTransactionInput = errors.New("invalid transaction input")
)
