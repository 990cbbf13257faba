package domain

const unknownDescription = "Unknown"

// CacheKind identifies the logical kind of on-disk cache a version marker tracks.
type CacheKind int

// Known cache kinds. The numeric values are persisted by version gates.
const (
	// CacheKindBinary is a binary cache file.
	CacheKindBinary CacheKind = 0

	// CacheKindJSON is a JSON storage file.
	CacheKindJSON CacheKind = 1
)

// IsValid returns true if the cache kind is recognised.
func (k CacheKind) IsValid() bool {
	return k == CacheKindBinary || k == CacheKindJSON
}

// Suffix returns the file extension used by files of this kind.
func (k CacheKind) Suffix() string {
	switch k {
	case CacheKindBinary:
		return ".cache"
	case CacheKindJSON:
		return JSONFileSuffix
	default:
		return ""
	}
}

// String returns the string representation.
func (k CacheKind) String() string {
	switch k {
	case CacheKindBinary:
		return "binary"
	case CacheKindJSON:
		return "json"
	default:
		return unknownDescription
	}
}
