package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderReload(t *testing.T) {
	h := NewHolder(newEngine(t))
	assert.Equal(t, "Accountant", h.Normalize("junior accountant"))

	next, err := New(staticProvider{titles: []string{"Data analyst"}}, defaultSet(t))
	require.NoError(t, err)
	require.NoError(t, h.Reload(func() (*Engine, error) { return next, nil }))

	assert.Same(t, next, h.Engine())
	assert.Equal(t, "", h.Normalize("junior accountant"))
	assert.Equal(t, "Data analyst", h.Normalize("data analyst"))
	assert.Equal(t, []string{"Data analyst"}, h.Titles())
}

func TestHolderReloadFailureKeepsCurrent(t *testing.T) {
	first := newEngine(t)
	h := NewHolder(first)

	err := h.Reload(func() (*Engine, error) { return nil, errors.New("bad catalog") })
	require.Error(t, err)
	assert.Same(t, first, h.Engine())

	assert.Error(t, h.Swap(nil))
	assert.Same(t, first, h.Engine())
}

func TestHolderDelegates(t *testing.T) {
	e := newEngine(t)
	h := NewHolder(e)

	m, ok := h.NormalizeDetailed("Software Engineer")
	require.True(t, ok)
	assert.Equal(t, "Software engineer", m.Title)
	assert.Equal(t, e.Threshold(), h.Threshold())
	assert.Equal(t, e.Prefixes(), h.Prefixes())
	assert.Len(t, h.Rank("accountant", 0), 2)
}
