package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/hcdash/pkg/configuration"
)

func TestNewSource(t *testing.T) {
	src, err := NewSource(configuration.SheetOptions{Source: configuration.SheetSourceFile, Path: "testdata/directory.csv", FetchTimeout: time.Second})
	require.NoError(t, err)
	require.IsType(t, &FileSource{}, src)

	src, err = NewSource(configuration.SheetOptions{Source: configuration.SheetSourceHTTP, URL: "https://example.test/pub?output=csv", FetchTimeout: time.Second})
	require.NoError(t, err)
	require.IsType(t, &HTTPSource{}, src)

	src, err = NewSource(configuration.SheetOptions{Source: configuration.SheetSourceXLSX, Path: "dir.xlsx", FetchTimeout: time.Second})
	require.NoError(t, err)
	require.IsType(t, &XLSXSource{}, src)

	_, err = NewSource(configuration.SheetOptions{Source: configuration.SheetSourceHTTP, FetchTimeout: time.Second})
	require.ErrorContains(t, err, "SHEET_URL")
}
