// Package location names where a file lives inside a disk partition scheme.
// Values are plain descriptions; nothing here touches a disk.
package location

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPartition = errors.New("invalid partition reference")
	ErrEmptyPath        = errors.New("file path has no components")
	ErrEmptyComponent   = errors.New("file path component is empty")
)

// Partition references a primary partition slot, or a logical partition
// nested in the extended partition occupying that slot
type Partition struct {
	primary    uint8
	logical    uint64
	hasLogical bool
}

// Primary references primary partition slot n
func Primary(n uint8) Partition {
	return Partition{primary: n}
}

// Logical references logical partition l inside primary slot n
func Logical(n uint8, l uint64) Partition {
	return Partition{primary: n, logical: l, hasLogical: true}
}

// PrimaryIndex returns the primary slot
func (p Partition) PrimaryIndex() uint8 {
	return p.primary
}

// LogicalIndex returns the logical index, if p references a logical partition
func (p Partition) LogicalIndex() (uint64, bool) {
	return p.logical, p.hasLogical
}

// IsLogical reports whether p references a logical partition
func (p Partition) IsLogical() bool {
	return p.hasLogical
}

// Equal reports whether both references name the same partition
func (p Partition) Equal(other Partition) bool {
	return p == other
}

// String renders p as "p<primary>" or "p<primary>l<logical>"
func (p Partition) String() string {
	if p.hasLogical {
		return fmt.Sprintf("p%dl%d", p.primary, p.logical)
	}
	return fmt.Sprintf("p%d", p.primary)
}

// ParsePartition parses the String form of a partition reference
func ParsePartition(s string) (Partition, error) {
	rest, ok := strings.CutPrefix(s, "p")
	if !ok {
		return Partition{}, fmt.Errorf("%w: %q: missing 'p' prefix", ErrInvalidPartition, s)
	}

	primaryText, logicalText, nested := strings.Cut(rest, "l")
	primary, err := strconv.ParseUint(primaryText, 10, 8)
	if err != nil {
		return Partition{}, fmt.Errorf("%w: %q: primary slot: %v", ErrInvalidPartition, s, err)
	}
	if !nested {
		return Primary(uint8(primary)), nil
	}

	logical, err := strconv.ParseUint(logicalText, 10, 64)
	if err != nil {
		return Partition{}, fmt.Errorf("%w: %q: logical index: %v", ErrInvalidPartition, s, err)
	}
	return Logical(uint8(primary), logical), nil
}

// MarshalText implements encoding.TextMarshaler
func (p Partition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Partition) UnmarshalText(text []byte) error {
	parsed, err := ParsePartition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
