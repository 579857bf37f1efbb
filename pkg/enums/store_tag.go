package enums

import "fmt"

// StoreTag is the short code of a physical outlet. Cart lines, pending
// orders and Store records are all scoped by it.
type StoreTag string

const (
	StoreTagWB  StoreTag = "wb"
	StoreTagBKK StoreTag = "bkk"
	StoreTagTK  StoreTag = "tk"
	StoreTagPSD StoreTag = "psd"
)

var validStoreTags = []StoreTag{
	StoreTagWB,
	StoreTagBKK,
	StoreTagTK,
	StoreTagPSD,
}

// String implements fmt.Stringer.
func (t StoreTag) String() string {
	return string(t)
}

// IsValid reports whether the value is a known StoreTag.
func (t StoreTag) IsValid() bool {
	for _, candidate := range validStoreTags {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseStoreTag converts raw input into a StoreTag.
func ParseStoreTag(value string) (StoreTag, error) {
	for _, candidate := range validStoreTags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store tag %q", value)
}
