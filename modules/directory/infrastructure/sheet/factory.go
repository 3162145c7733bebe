package sheet

import (
	"fmt"

	"github.com/jacksonlee411/hcdash/pkg/configuration"
)

// NewSource builds the uncached source selected by opts.Source.
func NewSource(opts configuration.SheetOptions) (Source, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Source {
	case configuration.SheetSourceHTTP:
		return NewHTTPSource(opts.URL, opts.FetchTimeout), nil
	case configuration.SheetSourceXLSX:
		return NewXLSXSource(opts.Path, opts.SheetName), nil
	case configuration.SheetSourceFile:
		return NewFileSource(opts.Path), nil
	default:
		return nil, fmt.Errorf("unknown sheet source %q", opts.Source)
	}
}
