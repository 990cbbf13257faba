package driven

// Serializer converts a stored value of shape T to and from text.
type Serializer[T any] interface {
	// Decode parses data into a new value.
	// Returns (nil, nil) when data decodes to a null document.
	// Malformed or mismatched content returns an error wrapping domain.ErrDecode.
	Decode(data []byte) (*T, error)

	// Encode renders v as indented text with top-level null members omitted.
	Encode(v *T) ([]byte, error)
}
