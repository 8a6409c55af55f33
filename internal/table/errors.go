package table

import "errors"

var (
	ErrTableFull         = errors.New("table is full")
	ErrAlreadySeated     = errors.New("player is already seated")
	ErrNotSeated         = errors.New("player is not seated at this table")
	ErrNotOwner          = errors.New("only the table owner can do that")
	ErrWrongStatus       = errors.New("wrong table status")
	ErrNoPendingQuestion = errors.New("no question is waiting for this player")
	ErrAnswerPending     = errors.New("an answer is already being processed")
)
