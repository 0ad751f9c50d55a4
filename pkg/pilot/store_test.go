package pilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

func TestStoreGetUpdate(t *testing.T) {
	s := NewStore(Default())

	a := Default()
	a.Floors = 8
	require.NoError(t, s.Update(a))

	assert.Equal(t, 8, s.Get().Floors)
}

func TestStoreUpdateRejectsInvalid(t *testing.T) {
	s := NewStore(Default())

	bad := Default()
	bad.Floors = 99
	err := s.Update(bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidationOutOfRange))

	assert.Equal(t, 4, s.Get().Floors, "failed update must not change state")
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(Default())
	ch := s.Subscribe()

	a := Default()
	a.Floors = 6
	require.NoError(t, s.Update(a))

	select {
	case got := <-ch:
		assert.Equal(t, 6, got.Floors)
	case <-time.After(time.Second):
		t.Fatal("no notification within a second")
	}
}

func TestStoreSlowSubscriberDoesNotBlock(t *testing.T) {
	s := NewStore(Default())
	s.Subscribe() // registered but never drained

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			a := Default()
			a.Floors = 5
			assert.NoError(t, s.Update(a))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("updates blocked on a stalled subscriber")
	}
	assert.Equal(t, 5, s.Get().Floors)
}
