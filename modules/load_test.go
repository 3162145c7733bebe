package modules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/hcdash/pkg/application"
)

type fakeModule struct {
	name string
	err  error
	hits *[]string
}

func (m fakeModule) Name() string { return m.name }
func (m fakeModule) Register(application.Application) error {
	*m.hits = append(*m.hits, m.name)
	return m.err
}

func TestLoad_StopsAtFirstError(t *testing.T) {
	var hits []string
	boom := errors.New("boom")
	err := Load(application.New(&application.ApplicationOptions{}),
		fakeModule{name: "a", hits: &hits},
		fakeModule{name: "b", err: boom, hits: &hits},
		fakeModule{name: "c", hits: &hits},
	)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "register module b")
	require.Equal(t, []string{"a", "b"}, hits)
}
