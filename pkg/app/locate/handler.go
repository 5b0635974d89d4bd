package locate

import (
	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/location"
)

// Validate validates a location request
func (r *Request) Validate() error {
	if r.Partition == "" {
		return app.NewError(app.ErrCodeInvalidInput, "partition is required", nil)
	}
	if _, err := location.ParsePartition(r.Partition); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid partition", err)
	}
	if len(location.ParsePath(r.Path)) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "path must name at least one component", location.ErrEmptyPath)
	}
	return nil
}

// Handle resolves a request into a FileNode description
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	partition, _ := location.ParsePartition(req.Partition)
	node, err := location.NewFileNode(partition, location.ParsePath(req.Path)...)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid file location", err)
	}

	ctx.Log("resolved file location", "node", node.String())

	response := &Response{
		Node:          node,
		Location:      node.String(),
		PartitionKind: KindPrimary,
		Primary:       partition.PrimaryIndex(),
		Name:          node.Name(),
		Depth:         len(node.Path),
	}
	if logical, ok := partition.LogicalIndex(); ok {
		response.PartitionKind = KindLogical
		response.Logical = &logical
	}
	if parent, ok := node.Parent(); ok {
		response.Parent = parent.JoinedPath()
	}

	return response, nil
}
