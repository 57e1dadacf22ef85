package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// QueryKey identifies a cached read. It is an ordered tuple whose first segment is the entity
// kind. Each segment is stored in a canonical JSON form (object keys sorted), so two keys built
// from the same logical parameters are equal regardless of how the parameters were assembled.
type QueryKey struct {
	segments []string
	handle   unique.Handle[string]
}

// NewQueryKey builds a key from a kind and its parameters.
// Parameters may be any JSON-encodable value; maps are compared by content.
func NewQueryKey(kind string, params ...any) QueryKey {
	segments := make([]string, 0, len(params)+1)
	segments = append(segments, canonicalSegment(kind))
	for _, p := range params {
		segments = append(segments, canonicalSegment(p))
	}
	return QueryKey{
		segments: segments,
		handle:   unique.Make("[" + strings.Join(segments, ",") + "]"),
	}
}

func canonicalSegment(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Unencodable parameters still need a stable identity.
		b, _ = json.Marshal(fmt.Sprintf("%T:%v", v, v))
	}
	return string(b)
}

// Handle returns the interned canonical form, suitable as a map key.
func (k QueryKey) Handle() unique.Handle[string] {
	return k.handle
}

// String returns the canonical JSON array form of the key.
func (k QueryKey) String() string {
	if len(k.segments) == 0 {
		return "[]"
	}
	return k.handle.Value()
}

// Kind returns the entity kind, the first segment of the key.
func (k QueryKey) Kind() string {
	if len(k.segments) == 0 {
		return ""
	}
	var kind string
	_ = json.Unmarshal([]byte(k.segments[0]), &kind)
	return kind
}

// Len returns the number of segments including the kind.
func (k QueryKey) Len() int {
	return len(k.segments)
}

// IsZero reports whether the key was never constructed.
func (k QueryKey) IsZero() bool {
	return len(k.segments) == 0
}

// Equal reports structural equality.
func (k QueryKey) Equal(other QueryKey) bool {
	return len(k.segments) == len(other.segments) && k.handle == other.handle
}

// HasPrefix reports whether pattern is a leading sub-tuple of k. A pattern of ("apps") matches
// ("apps"), ("apps","my",...) and ("apps","featured",...).
func (k QueryKey) HasPrefix(pattern QueryKey) bool {
	if pattern.IsZero() || len(pattern.segments) > len(k.segments) {
		return false
	}
	for i, seg := range pattern.segments {
		if k.segments[i] != seg {
			return false
		}
	}
	return true
}

// Fingerprint returns a short stable hash of the key for logs and span attributes.
func (k QueryKey) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(k.String()))
}
