package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// OracleBool maps a NUMBER(1) column onto a Go bool.
type OracleBool bool

// Value implements the driver.Valuer interface
func (b OracleBool) Value() (driver.Value, error) {
	if b {
		return int64(1), nil
	}
	return int64(0), nil
}

// Scan implements the sql.Scanner interface. Drivers return NUMBER as
// int64, float64, string or []byte depending on precision and settings.
func (b *OracleBool) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*b = false
	case bool:
		*b = OracleBool(v)
	case int64:
		*b = v != 0
	case float64:
		*b = v != 0
	case string:
		return b.parse(v)
	case []byte:
		return b.parse(string(v))
	default:
		return fmt.Errorf("OracleBool Scan: unsupported type %T", value)
	}
	return nil
}

func (b *OracleBool) parse(s string) error {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("OracleBool Scan: %w", err)
	}
	*b = n != 0
	return nil
}
