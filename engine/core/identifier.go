package core

/**
 * @brief Hands out unique uint32 identifiers for the lifetime of the
 * process. Ids are monotonically increasing and never recycled, so a
 * released resource's id can never be observed on a newer one.
 *
 * An allocator is owned by whatever factory creates the resources (a
 * system, a resource manager); there is no package-global instance. All
 * mutation is expected to happen on the main engine thread.
 */
type IDAllocator struct {
	next uint32
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Acquire returns the next free id.
func (a *IDAllocator) Acquire() uint32 {
	id := a.next
	a.next++
	return id
}

// Allocated returns how many ids have been handed out so far.
func (a *IDAllocator) Allocated() uint32 {
	return a.next
}
