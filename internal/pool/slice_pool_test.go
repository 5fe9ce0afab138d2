package pool

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGetStringSlice_GetAllDBNamesShape mirrors db.Manager.GetAllDBNames's
// actual usage: fill the scratch slice with names under a lock, copy out,
// then release it.
func TestGetStringSlice_GetAllDBNamesShape(t *testing.T) {
	dbs := map[string]int{"alpha": 1, "beta": 2, "gamma": 3}

	scratch, cleanup := GetStringSlice(len(dbs))

	i := 0
	for name := range dbs {
		scratch[i] = name
		i++
	}

	names := make([]string, len(scratch))
	copy(names, scratch)
	cleanup()

	sort.Strings(names)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, names)
}

func TestGetStringSlice_ExactLength(t *testing.T) {
	slice, cleanup := GetStringSlice(100)
	defer cleanup()

	require.Equal(t, 100, len(slice))
	require.GreaterOrEqual(t, cap(slice), 100)
}

func TestGetStringSlice_ReusesBackingArrayAcrossCalls(t *testing.T) {
	// A database registry growing and shrinking repeatedly should reuse the
	// same backing array rather than reallocate on every GetAllDBNames call.
	slice1, cleanup1 := GetStringSlice(50)
	ptr1 := &slice1[0]
	cleanup1()

	slice2, cleanup2 := GetStringSlice(50)
	defer cleanup2()
	ptr2 := &slice2[0]

	require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
}

func TestGetStringSlice_GrowsWhenRegistryExpands(t *testing.T) {
	_, cleanup1 := GetStringSlice(10)
	cleanup1()

	slice2, cleanup2 := GetStringSlice(1000)
	defer cleanup2()

	require.Equal(t, 1000, len(slice2))
	require.GreaterOrEqual(t, cap(slice2), 1000)
}

func TestGetStringSlice_ZeroDatabases(t *testing.T) {
	slice, cleanup := GetStringSlice(0)
	defer cleanup()

	require.Equal(t, 0, len(slice))
}

func TestGetStringSlice_ConcurrentManagers(t *testing.T) {
	const goroutines = 100
	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer func() { done <- true }()

			slice, cleanup := GetStringSlice(5)
			defer cleanup()

			for j := range slice {
				slice[j] = "db"
			}
		}(i)
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
}
