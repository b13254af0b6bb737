package benchmark

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultOps is used when a request does not name an op count
const DefaultOps uint64 = 5_000_000

// Query errors
var (
	ErrInvalidOps = errors.New("invalid ops value")
	ErrOpsLimit   = errors.New("ops exceeds limit")
)

// Query holds the parsed bench request parameters
type Query struct {
	Ops *uint64 // nil when absent
}

// OpsOrDefault returns the requested op count or DefaultOps.
func (q Query) OpsOrDefault() uint64 {
	if q.Ops == nil {
		return DefaultOps
	}
	return *q.Ops
}

// ParseQuery reads the ops parameter from a URL query. An absent or empty
// value leaves Ops unset; anything else must be a base-10 uint64 with at
// most one leading '+'.
func ParseQuery(values url.Values) (Query, error) {
	raw := values.Get("ops")
	if raw == "" {
		return Query{}, nil
	}

	ops, err := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, 64)
	if err != nil {
		return Query{}, fmt.Errorf("%w: %q", ErrInvalidOps, raw)
	}
	return Query{Ops: &ops}, nil
}

// CheckLimit rejects op counts above maxOps. A zero maxOps means unlimited.
func CheckLimit(ops, maxOps uint64) error {
	if maxOps > 0 && ops > maxOps {
		return fmt.Errorf("%w: %d > %d", ErrOpsLimit, ops, maxOps)
	}
	return nil
}

// IsClientError reports whether err was caused by bad request input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOps) || errors.Is(err, ErrOpsLimit)
}
