package enums

import "fmt"

// AllocationType classifies which program an inventory item is allocated to.
type AllocationType string

const (
	AllocationTypeTraining AllocationType = "TRAINING"
	AllocationTypeNC2      AllocationType = "NC2"
)

var validAllocationTypes = []AllocationType{
	AllocationTypeTraining,
	AllocationTypeNC2,
}

// String implements fmt.Stringer.
func (a AllocationType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AllocationType.
func (a AllocationType) IsValid() bool {
	for _, candidate := range validAllocationTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// Display returns the human readable label shown to operators.
func (a AllocationType) Display() string {
	switch a {
	case AllocationTypeTraining:
		return "Training Center"
	case AllocationTypeNC2:
		return "NC II Assessment"
	}
	return string(a)
}

// ParseAllocationType converts raw input into an AllocationType.
func ParseAllocationType(value string) (AllocationType, error) {
	for _, candidate := range validAllocationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid allocation type %q", value)
}
