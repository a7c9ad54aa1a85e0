package enums

import "fmt"

// StorageType describes the temperature regime a consignment must travel in.
type StorageType string

const (
	StorageTypeAmbient            StorageType = "ambient"
	StorageTypeControlledRoomTemp StorageType = "controlled_room_temp"
	StorageTypeColdChain          StorageType = "cold_chain_2_8c"
	StorageTypeFrozen             StorageType = "frozen_minus_20c"
)

var validStorageTypes = []StorageType{
	StorageTypeAmbient,
	StorageTypeControlledRoomTemp,
	StorageTypeColdChain,
	StorageTypeFrozen,
}

// String implements fmt.Stringer.
func (s StorageType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StorageType.
func (s StorageType) IsValid() bool {
	for _, candidate := range validStorageTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStorageType converts raw input into a StorageType.
func ParseStorageType(value string) (StorageType, error) {
	for _, candidate := range validStorageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage type %q", value)
}
