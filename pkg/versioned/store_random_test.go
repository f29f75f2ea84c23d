package versioned

import (
	"fmt"
	"sort"
	"testing"

	"github.com/oneconcern/datadesk/internal/rand"
	"github.com/oneconcern/datadesk/pkg/errors"
	"github.com/oneconcern/datadesk/pkg/versioned/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference is a naive model of the store, used to check random sequences of operations
type reference struct {
	versions    []string
	current     int
	checkpoints map[string]int
	locked      bool
}

func (r *reference) commit(value string) {
	r.versions = append(r.versions[:r.current+1], value)
	for name, index := range r.checkpoints {
		if index > r.current {
			delete(r.checkpoints, name)
		}
	}
	r.current = len(r.versions) - 1
}

func (r *reference) names() []string {
	names := make([]string, 0, len(r.checkpoints))
	for name := range r.checkpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestRandomOperations(t *testing.T) {
	const iterations = 1000
	names := []string{"a", "b", "c", InitialCheckpoint, "unknown"}

	s := New(rows{"v0"})
	ref := &reference{
		versions:    []string{"v0"},
		checkpoints: map[string]int{InitialCheckpoint: 0},
	}

	for i := 1; i <= iterations; i++ {
		var op string
		switch rand.Intn(6) {
		case 0, 1:
			value := fmt.Sprintf("v%d", i)
			op = "commit " + value
			assert.Equal(t, len(ref.versions[:ref.current+1]), s.Commit(rows{value}, value))
			ref.commit(value)

		case 2:
			name := names[rand.Intn(3)]
			op = "checkpoint " + name
			require.NoError(t, s.Checkpoint(name))
			ref.checkpoints[name] = ref.current

		case 3:
			op = "rollback"
			restored, err := s.Rollback()
			if ref.locked {
				assert.True(t, errors.Is(err, status.ErrLocked), op)
				break
			}
			require.NoError(t, err)
			if ref.current == 0 {
				assert.Equal(t, AlreadyAtInitial, restored.Outcome, op)
				break
			}
			ref.current--
			assert.Equal(t, RolledBack, restored.Outcome, op)

		case 4:
			name := names[rand.Intn(len(names))]
			op = "rollback to " + name
			restored, err := s.RollbackTo(name)
			if ref.locked {
				assert.True(t, errors.Is(err, status.ErrLocked), op)
				break
			}
			require.NoError(t, err)
			index, ok := ref.checkpoints[name]
			if !ok {
				assert.Equal(t, CheckpointNotFound, restored.Outcome, op)
				break
			}
			ref.current = index
			assert.Equal(t, RolledBack, restored.Outcome, op)

		case 5:
			ref.locked = !ref.locked
			op = fmt.Sprintf("lock %t", ref.locked)
			s.SetLock(ref.locked)
		}

		st := s.Status()
		require.Equal(t, ref.current, st.CurrentIndex, "after %d: %s", i, op)
		require.Equal(t, len(ref.versions), st.TotalVersions, "after %d: %s", i, op)
		require.Equal(t, ref.names(), st.Checkpoints, "after %d: %s", i, op)
		require.Equal(t, !ref.locked, st.RollbackAllowed, "after %d: %s", i, op)
		require.Equal(t, rows{ref.versions[ref.current]}, s.Current(), "after %d: %s", i, op)
	}
}
