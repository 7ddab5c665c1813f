package stockpile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// spawner creates a child entity from inside its own update, the pattern
// the staged-create path exists for.
type spawner struct {
	sto     Store[spawner]
	fuse    bool
	spawned bool
	child   Handle[spawner]
}

func (sp *spawner) Update(self Self, dt float64) {
	if sp.fuse && !sp.spawned {
		h, err := sp.sto.Create(spawner{})
		if err == nil {
			sp.child = h
			sp.spawned = true
		}
	}
}

func TestCreateDuringUpdate(t *testing.T) {
	sto := FactoryNewStore[spawner]()

	h, err := sto.Create(spawner{sto: sto, fuse: true})
	require.NoError(t, err)
	require.NoError(t, sto.Refresh())
	require.Equal(t, 1, sto.Active())

	require.NoError(t, sto.Update(1))

	// The spawn was staged during the pass and flushed when it ended
	require.Equal(t, 1, sto.Active())
	require.Equal(t, 1, sto.Pending())
	require.True(t, h.MustGet().child.Alive())

	require.NoError(t, sto.Refresh())
	require.Equal(t, 2, sto.Active())
	require.True(t, h.MustGet().child.Alive())
	require.NoError(t, sto.Validate())
}

func TestLockStagesCreates(t *testing.T) {
	sto := FactoryNewStore[blob]()

	sto.Lock()
	require.True(t, sto.Locked())

	h, err := sto.Create(blob{n: 7})
	require.NoError(t, err)

	// Slot storage must not move while locked
	require.Equal(t, 0, sto.Capacity())
	require.Equal(t, 1, sto.Pending())

	// Staged handles are valid and dereferenceable immediately
	require.True(t, h.Alive())
	require.Equal(t, 7, h.MustGet().n)

	var locked LockedStoreError
	require.ErrorAs(t, sto.Refresh(), &locked)
	require.ErrorAs(t, sto.Clear(), &locked)

	sto.Unlock()
	require.False(t, sto.Locked())
	require.Equal(t, 10, sto.Capacity())
	require.Equal(t, 7, h.MustGet().n)

	require.NoError(t, sto.Refresh())
	require.Equal(t, 1, sto.Active())
	require.True(t, h.Alive())
	require.NoError(t, sto.Validate())
}

func TestDestroyStagedBeforeFlush(t *testing.T) {
	sto := FactoryNewStore[blob]()

	sto.Lock()
	h, err := sto.Create(blob{n: 1})
	require.NoError(t, err)
	h.Destroy()
	sto.Unlock()

	// Materialized dead; invalidation still waits for the refresh
	require.True(t, h.Alive())
	require.NoError(t, sto.Refresh())
	require.False(t, h.Alive())
	require.Equal(t, 0, sto.Active())
	require.NoError(t, sto.Validate())
}

func TestStagedCreateReusesRecycledSlots(t *testing.T) {
	sto := FactoryNewStore[blob]()

	var hs []Handle[blob]
	for i := 0; i < 3; i++ {
		h, err := sto.Create(blob{n: i})
		require.NoError(t, err)
		hs = append(hs, h)
	}
	require.NoError(t, sto.Refresh())
	sto.Destroy(hs...)
	require.NoError(t, sto.Refresh())
	require.Equal(t, 0, sto.Active())

	sto.Lock()
	h, err := sto.Create(blob{n: 9})
	require.NoError(t, err)
	require.True(t, h.Alive())
	require.Equal(t, 9, h.MustGet().n)
	sto.Unlock()

	require.NoError(t, sto.Refresh())
	require.Equal(t, 1, sto.Active())
	require.Equal(t, 9, h.MustGet().n)
	for _, old := range hs {
		require.False(t, old.Alive())
	}
	require.NoError(t, sto.Validate())
}

func TestNestedLocks(t *testing.T) {
	sto := FactoryNewStore[blob]()

	sto.Lock()
	sto.Lock()
	_, err := sto.Create(blob{n: 1})
	require.NoError(t, err)

	sto.Unlock()
	require.True(t, sto.Locked())
	require.Equal(t, 0, sto.Capacity(), "queue flushed before final unlock")

	sto.Unlock()
	require.False(t, sto.Locked())
	require.Equal(t, 1, sto.Pending())

	// Surplus unlocks are ignored
	sto.Unlock()
	require.False(t, sto.Locked())
}

func TestUpdateWhileLocked(t *testing.T) {
	sto := FactoryNewStore[mob]()
	sto.Lock()
	var locked LockedStoreError
	require.ErrorAs(t, sto.Update(1), &locked)
	sto.Unlock()
}

func TestMaxCapacityWhileLocked(t *testing.T) {
	sto := FactoryNewStore[blob](WithMaxCapacity(1))

	sto.Lock()
	_, err := sto.Create(blob{n: 1})
	require.NoError(t, err)

	_, err = sto.Create(blob{n: 2})
	var capErr CapacityError
	require.ErrorAs(t, err, &capErr)
	sto.Unlock()

	require.NoError(t, sto.Refresh())
	require.Equal(t, 1, sto.Active())
}
