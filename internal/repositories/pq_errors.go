package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUnknownReference is returned when a write names a profile or listing
// that does not exist.
var ErrUnknownReference = errors.New("referenced record does not exist")

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
