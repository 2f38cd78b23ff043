package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAssignsIncreasingSmallIDs(t *testing.T) {
	g := New()

	_, first, err := g.Generate(KindIgesData)
	require.NoError(t, err)

	_, second, err := g.Generate(KindAssembly)
	require.NoError(t, err)

	assert.Equal(t, first+1, second)
}

func TestGenerateRejectsWrongKind(t *testing.T) {
	g := New()

	_, _, err := g.Generate(KindEntityNew)
	assert.ErrorAs(t, err, &ErrKindMismatch{})

	_, _, err = g.GenerateEntity(KindIgesData, 100)
	assert.ErrorAs(t, err, &ErrKindMismatch{})
}

func TestReleaseThenGenerateReusesSmallestReleasedID(t *testing.T) {
	g := New()

	_, a, err := g.Generate(KindIgesData)
	require.NoError(t, err)
	_, b, err := g.Generate(KindIgesData)
	require.NoError(t, err)
	_, c, err := g.Generate(KindIgesData)
	require.NoError(t, err)

	g.Release(b)
	g.Release(c)

	_, reused, err := g.Generate(KindIgesData)
	require.NoError(t, err)
	assert.Equal(t, b, reused)

	_, next, err := g.Generate(KindIgesData)
	require.NoError(t, err)
	assert.Equal(t, c, next)

	_ = a
}

func TestReserveIsIdempotentWhileLive(t *testing.T) {
	g := New()

	id1, small1, err := g.Reserve(7, 100, 42)
	require.NoError(t, err)

	id2, small2, err := g.Reserve(7, 100, 42)
	require.NoError(t, err)

	assert.True(t, id1.Equal(id2))
	assert.Equal(t, small1, small2)
}

func TestGetReservedConsumesTheReservation(t *testing.T) {
	g := New()

	reserved, _, err := g.Reserve(1, 100, 5)
	require.NoError(t, err)

	got, err := g.GetReserved(1, 100, 5)
	require.NoError(t, err)
	assert.True(t, reserved.Equal(got))

	_, err = g.GetReserved(1, 100, 5)
	assert.ErrorAs(t, err, &ErrReservationNotFound{})
}

func TestGetReservedUnknownTripleFails(t *testing.T) {
	g := New()
	_, err := g.GetReserved(1, 2, 3)
	assert.ErrorAs(t, err, &ErrReservationNotFound{})
}

func TestTryGetBySmallID(t *testing.T) {
	g := New()
	id, small, err := g.Generate(KindIgesData)
	require.NoError(t, err)

	got, ok := g.TryGetBySmallID(small)
	require.True(t, ok)
	assert.True(t, id.Equal(got))

	_, ok = g.TryGetBySmallID(small + 999)
	assert.False(t, ok)
}

func TestUnsetIDIsNotSet(t *testing.T) {
	assert.False(t, UnsetID.IsSet())
	assert.True(t, UnsetID.Equal(ObjectID{}))
}
