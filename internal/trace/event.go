// Package trace records the lifecycle of owned string allocations:
// alloc, retain, release and free events, encoded as a msgpack stream.
package trace

// Kind represents the type of heap event.
type Kind uint8

const (
	// KindAlloc marks a fresh owned allocation (counter starts at 1).
	KindAlloc Kind = iota + 1
	// KindRetain marks a copy of an owned handle (counter += 1).
	KindRetain
	// KindRelease marks a destroy of an owned handle (counter -= 1).
	KindRelease
	// KindFree marks the counter reaching zero and the buffer being freed.
	KindFree
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindRetain:
		return "retain"
	case KindRelease:
		return "release"
	case KindFree:
		return "free"
	default:
		return "unknown"
	}
}

// Event is one heap lifecycle record.
type Event struct {
	Seq     uint64 `msgpack:"seq"`
	Kind    Kind   `msgpack:"kind"`
	AllocID uint64 `msgpack:"alloc_id"`
	Refs    int    `msgpack:"refs"`
	Len     int    `msgpack:"len"`
}
