// Package key normalizes externally supplied identifiers into the store's
// native key type.
//
// Identifiers cross the API and CLI boundary as strings. A string that is a
// well-formed ObjectID hex is decoded into the native key; anything else is
// carried as an opaque string and used verbatim in filters. Parsing never
// fails: a malformed identifier silently matches nothing on _id lookups and
// matches owner references only when a post stored that exact raw value.
// The sum type makes that lenience explicit instead of an implicit
// fallthrough buried in every repository method.
package key

import "go.mongodb.org/mongo-driver/bson/primitive"

// Key is either a decoded native ObjectID or an opaque string.
type Key struct {
	oid   primitive.ObjectID
	raw   string
	valid bool
}

// Parse normalizes a raw identifier. It never fails; malformed input
// degrades to an opaque key.
func Parse(raw string) Key {
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		return Key{oid: oid, valid: true}
	}
	return Key{raw: raw}
}

// FromObjectID wraps a native ObjectID.
func FromObjectID(oid primitive.ObjectID) Key {
	return Key{oid: oid, valid: true}
}

// Valid reports whether the key decoded to a native ObjectID.
func (k Key) Valid() bool { return k.valid }

// ObjectID returns the decoded native key. Only meaningful when Valid.
func (k Key) ObjectID() primitive.ObjectID { return k.oid }

// Filter returns the value to match against stored fields: the ObjectID for
// valid keys, the raw string verbatim for opaque ones.
func (k Key) Filter() any {
	if k.valid {
		return k.oid
	}
	return k.raw
}

// String returns the boundary representation: the hex form for valid keys,
// the original input for opaque ones.
func (k Key) String() string {
	if k.valid {
		return k.oid.Hex()
	}
	return k.raw
}
