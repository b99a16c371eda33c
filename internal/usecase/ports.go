package usecase

import "time"

// IDGenerator returns a random token, used as the suffix of generated ids.
type IDGenerator interface {
	NewID() string
}

// Clock is the current time.
type Clock interface {
	Now() time.Time
}
