package infra

import (
	"time"
)

const (
	backoffBase = 500 * time.Millisecond
	backoffMax  = 30 * time.Second
)

// CalculateBackoff returns the exponential delay for a given retry count:
// base * 2^retry, capped at backoffMax. Negative counts get the base delay.
func CalculateBackoff(retry int) time.Duration {
	if retry < 0 {
		return backoffBase
	}
	// 2^30 already far exceeds the cap; stop shifting before overflow.
	if retry > 30 {
		return backoffMax
	}

	d := backoffBase * time.Duration(1<<retry)
	if d > backoffMax {
		return backoffMax
	}
	return d
}
