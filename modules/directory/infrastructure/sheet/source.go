package sheet

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jacksonlee411/hcdash/pkg/serrors"
)

// Source yields the raw CSV text of the directory sheet.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (string, error)
}

var ErrSourceUnavailable = serrors.NewError(
	"DIRECTORY_SOURCE_UNAVAILABLE",
	"directory source unavailable",
	"Directory.Errors.SourceUnavailable",
)

// FetchError is the single error reported for a failed fetch.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to fetch directory sheet %s: HTTP %d %s", e.Source, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("failed to fetch directory sheet %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("failed to fetch directory sheet %s", e.Source)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
