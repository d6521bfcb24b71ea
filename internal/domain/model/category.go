package model

import "time"

// Category is a named spending bucket with a budget ceiling in JPY.
// Names are not unique; lookups by name bind to the oldest matching row.
type Category struct {
	ID        int64
	Name      string
	Budget    int64
	CreatedAt time.Time
}
