package weights

import (
	"errors"
	"fmt"
)

var ErrInvalidTopology = errors.New("invalid topology")

// ErrSizeMismatch is returned by a strict partition when the decoded
// vector does not hold exactly the expected number of values.
type ErrSizeMismatch struct {
	Expected int
	Got      int
}

func (e ErrSizeMismatch) Error() string {
	if e.Got > e.Expected {
		return fmt.Sprintf("weight count mismatch: expected %d, got %d (%d extra)", e.Expected, e.Got, e.Got-e.Expected)
	}
	return fmt.Sprintf("weight count mismatch: expected %d, got %d (%d missing)", e.Expected, e.Got, e.Expected-e.Got)
}
