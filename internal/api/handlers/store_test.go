package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-savings/internal/savings"
)

func TestResultStore_PutGet(t *testing.T) {
	s := NewResultStore(2)

	stored := s.Put(&savings.Result{}, &savings.ParseReport{}, "DKK")
	require.NotEmpty(t, stored.ID)

	got, ok := s.Get(stored.ID)
	require.True(t, ok)
	assert.Same(t, stored, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestResultStore_EvictsOldest(t *testing.T) {
	s := NewResultStore(2)

	first := s.Put(&savings.Result{}, nil, "DKK")
	second := s.Put(&savings.Result{}, nil, "DKK")
	third := s.Put(&savings.Result{}, nil, "DKK")

	_, ok := s.Get(first.ID)
	assert.False(t, ok)
	_, ok = s.Get(second.ID)
	assert.True(t, ok)
	_, ok = s.Get(third.ID)
	assert.True(t, ok)
}

func TestResultStore_UniqueIDs(t *testing.T) {
	s := NewResultStore(10)
	a := s.Put(&savings.Result{}, nil, "DKK")
	b := s.Put(&savings.Result{}, nil, "DKK")
	assert.NotEqual(t, a.ID, b.ID)
}
