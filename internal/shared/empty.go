package shared

// emptyType is the unset-value sentinel. It is a distinct type rather than
// a nil so that every legal dependency result, including untyped nil, stays
// representable in a cache slot.
type emptyType struct{}

// Empty marks a slot that has never been written.
var Empty any = emptyType{}

// IsEmpty reports whether v is the unset sentinel.
func IsEmpty(v any) bool {
	_, ok := v.(emptyType)
	return ok
}
