package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Scan implements sql.Scanner for dates stored as YYYY-MM-DD text.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DateOf(v)
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
