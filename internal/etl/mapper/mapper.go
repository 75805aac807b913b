// Package mapper persists computed weekly records idempotently: unknown
// natural keys are inserted, changed rows are updated, identical rows are
// dropped silently.
package mapper

import "time"

const dateKeyLayout = "2006-01-02"

func dateKey(d time.Time) string {
	return d.Format(dateKeyLayout)
}

func eqInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat64(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
