package domain

import "time"

// StorageTime returns t in UTC at microsecond precision, the finest
// resolution Postgres keeps. Stamping with it makes a returned entity equal
// the row later read back.
func StorageTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
