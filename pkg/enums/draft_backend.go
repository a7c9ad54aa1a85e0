package enums

import "fmt"

// DraftBackend selects where award wizard drafts are saved.
type DraftBackend string

const (
	DraftBackendMemory   DraftBackend = "memory"
	DraftBackendRedis    DraftBackend = "redis"
	DraftBackendDatabase DraftBackend = "database"
)

var validDraftBackends = []DraftBackend{
	DraftBackendMemory,
	DraftBackendRedis,
	DraftBackendDatabase,
}

// String implements fmt.Stringer.
func (d DraftBackend) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DraftBackend.
func (d DraftBackend) IsValid() bool {
	for _, candidate := range validDraftBackends {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDraftBackend converts raw input into a DraftBackend.
func ParseDraftBackend(value string) (DraftBackend, error) {
	for _, candidate := range validDraftBackends {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid draft backend %q", value)
}
