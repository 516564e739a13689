package admin

import (
	"context"
	"errors"

	"github.com/simp-lee/storeadmin/internal/gateway"
)

// LoadRecords fetches the full record list for an admin screen from the given
// collection endpoint. A failure wraps into a LoadError with the HTTP status
// preserved, so it can surface as a screen-level error rather than a modal
// one.
func LoadRecords(ctx context.Context, client *gateway.Client, endpoint string) ([]Record, error) {
	var records []Record
	if err := client.Get(ctx, endpoint, &records); err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			return nil, &LoadError{Status: apiErr.Status, Err: err}
		}
		return nil, &LoadError{Err: err}
	}
	return records, nil
}
