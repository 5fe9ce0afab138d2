package pool

import "sync"

// stringSlicePool backs db.Manager.GetAllDBNames's scratch slice: that call
// builds a fresh []string on every invocation (the response cache only
// memoizes per-database bytes, not this listing), so the scratch backing
// array is worth reusing across calls instead of reallocating each time.
var stringSlicePool = sync.Pool{
	New: func() any { return &[]string{} },
}

// GetStringSlice retrieves and resizes a string slice from the pool.
//
// The returned slice will have the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []string: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	names, cleanup := pool.GetStringSlice(len(m.dbs))
//	defer cleanup()
//	// fill names with database names, then copy out before cleanup runs...
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { stringSlicePool.Put(ptr) }
}
