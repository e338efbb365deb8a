package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so cache expiry and month boundaries are testable.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
