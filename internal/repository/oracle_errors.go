package repository

import (
	"fmt"
	"strings"

	"practice-quest/internal/domain"
)

// Oracle error codes surface in the message of both go-ora and godror errors,
// so matching on the "ORA-nnnnn" text works for either driver.
const (
	oraUniqueViolation  = "ORA-00001"
	oraChildRecordFound = "ORA-02292"
)

var oraConcurrencyCodes = []string{
	"ORA-00060", // deadlock detected
	"ORA-08177", // can't serialize access
	"ORA-00054", // resource busy (NOWAIT)
	"ORA-30006", // resource busy (WAIT timeout)
}

func hasOraCode(err error, code string) bool {
	return err != nil && strings.Contains(err.Error(), code)
}

func isUniqueViolation(err error) bool {
	return hasOraCode(err, oraUniqueViolation)
}

func isChildRecordFound(err error) bool {
	return hasOraCode(err, oraChildRecordFound)
}

func isConcurrencyError(err error) bool {
	for _, code := range oraConcurrencyCodes {
		if hasOraCode(err, code) {
			return true
		}
	}
	return false
}

// wrapDBError turns lock conflicts into CONCURRENCY_CONFLICT and wraps everything else.
func wrapDBError(op string, err error) error {
	if isConcurrencyError(err) {
		return domain.NewConcurrencyConflictError(op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
