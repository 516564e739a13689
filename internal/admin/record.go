package admin

import (
	"fmt"
	"math"
	"strconv"
)

// Record is an opaque mapping from field key to scalar value. Records are
// identified by the value under the config's IDField. The engine holds a
// working copy fetched once per screen and kept consistent with the server
// only through explicit mutation calls.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record with other's keys overlaid on r. Matches the
// "existing record overlaid with the mutation result" update semantics.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	if out == nil {
		out = make(Record, len(other))
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// IDString normalizes an identifier value to a string. JSON numbers decode
// as float64, so integral floats format without a decimal point.
func IDString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case uint:
		return strconv.FormatUint(uint64(id), 10)
	default:
		return fmt.Sprint(id)
	}
}
