package pgxcasbin

import "errors"

var (
	// ErrInsertRow indicates a row insert failure.
	ErrInsertRow = errors.New("failed to insert row")
	// ErrSelectAll indicates the policy table could not be read.
	ErrSelectAll = errors.New("failed to select rules")
	// ErrScanRow indicates a row scan failure.
	ErrScanRow = errors.New("failed to scan row")
	// ErrDeleteRow indicates a row delete failure.
	ErrDeleteRow = errors.New("failed to delete row")
	// ErrDeleteWhere indicates a filtered delete failure.
	ErrDeleteWhere = errors.New("failed to delete where")
	// ErrDeleteAll indicates the table could not be cleared.
	ErrDeleteAll = errors.New("failed to delete all rows")
	// ErrBeginTx indicates a transaction begin failure.
	ErrBeginTx = errors.New("failed to begin transaction")
	// ErrCommitTx indicates a transaction commit failure.
	ErrCommitTx = errors.New("failed to commit transaction")
	// ErrRollbackTx indicates a transaction rollback failure.
	ErrRollbackTx = errors.New("failed to rollback transaction")
	// ErrArgsTooLong indicates the provided args exceed the field count.
	ErrArgsTooLong = errors.New("args length exceeds field count")
	// ErrRuleTooLong indicates a rule exceeds the field count.
	ErrRuleTooLong = errors.New("rule length exceeds field count")
	// ErrEmptyPtype indicates a missing policy type.
	ErrEmptyPtype = errors.New("ptype is empty")
)
