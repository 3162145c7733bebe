package serrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	sentinel := NewError("DIRECTORY_FORBIDDEN", "permission denied", "Directory.Forbidden")
	decorated := sentinel.WithTemplateData(map[string]string{"object": "directory.profiles"})

	wrapped := fmt.Errorf("load: %w", decorated)
	require.ErrorIs(t, wrapped, sentinel)
	require.False(t, errors.Is(wrapped, NewError("OTHER", "x", "")))
	require.Equal(t, "DIRECTORY_FORBIDDEN", CodeOf(wrapped))
	require.Empty(t, sentinel.TemplateData, "WithTemplateData must not mutate the sentinel")
}

func TestBaseError_ErrorIncludesSortedTemplateData(t *testing.T) {
	err := NewError("X", "denied", "").WithTemplateData(map[string]string{"b": "2", "a": "1"})
	require.Equal(t, "denied a=1 b=2", err.Error())
}
