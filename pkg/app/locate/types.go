package locate

import (
	"github.com/deploymenttheory/go-wetfmt/pkg/location"
)

// Request represents a file location lookup
type Request struct {
	// Partition in "p<primary>" or "p<primary>l<logical>" form
	Partition string
	// Path is slash separated, rooted at the partition's filesystem
	Path string
}

// Response describes a resolved file location
type Response struct {
	Node          location.FileNode `json:"node" yaml:"node"`
	Location      string            `json:"location" yaml:"location"`
	PartitionKind string            `json:"partition_kind" yaml:"partition_kind"`
	Primary       uint8             `json:"primary" yaml:"primary"`
	Logical       *uint64           `json:"logical,omitempty" yaml:"logical,omitempty"`
	Name          string            `json:"name" yaml:"name"`
	Parent        string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Depth         int               `json:"depth" yaml:"depth"`
}

// Partition kinds reported in Response
const (
	KindPrimary = "primary"
	KindLogical = "logical"
)
