package courier

import "reflect"

// TypeKey identifies a message type. Keys are stable for the lifetime of
// the process: every KeyOf call for the same type yields the same key, and
// distinct types always yield distinct keys. The zero TypeKey identifies
// no type.
type TypeKey struct {
	rtype reflect.Type
}

// KeyOf returns the key for message type T.
func KeyOf[T any]() TypeKey {
	return TypeKey{rtype: reflect.TypeOf((*T)(nil)).Elem()}
}

// IsZero reports whether k is the zero key.
func (k TypeKey) IsZero() bool {
	return k.rtype == nil
}

// String returns the name of the keyed type.
func (k TypeKey) String() string {
	if k.rtype == nil {
		return "<none>"
	}
	return k.rtype.String()
}
