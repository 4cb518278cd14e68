package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingImport(t *testing.T) {
	p := NewPendingImport()

	assert.False(t, p.Waiting())
	assert.Nil(t, p.Claim())

	p.Put(ContestImport{Name: "Weekly 1", TotalProblems: 4, ReceivedAt: time.Now()})
	assert.True(t, p.Waiting())

	// A second submission replaces the first.
	p.Put(ContestImport{Name: "Weekly 2", TotalProblems: 5, ReceivedAt: time.Now()})

	ci := p.Claim()
	require.NotNil(t, ci)
	assert.Equal(t, "Weekly 2", ci.Name)

	// Claiming empties the slot.
	assert.False(t, p.Waiting())
	assert.Nil(t, p.Claim())
}
