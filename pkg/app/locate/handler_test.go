package locate

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/location"
)

func quietContext() *app.Context {
	ctx := app.NewContext()
	ctx.Stderr = io.Discard
	return ctx
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		request  *Request
		validate func(*testing.T, *Response)
	}{
		{
			name:    "primary partition",
			request: &Request{Partition: "p1", Path: "/EFI/BOOT/bootx64.efi"},
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, "p1:/EFI/BOOT/bootx64.efi", resp.Location)
				assert.Equal(t, KindPrimary, resp.PartitionKind)
				assert.Nil(t, resp.Logical)
				assert.Equal(t, "bootx64.efi", resp.Name)
				assert.Equal(t, "/EFI/BOOT", resp.Parent)
				assert.Equal(t, 3, resp.Depth)
				assert.True(t, resp.Node.Partition.Equal(location.Primary(1)))
			},
		},
		{
			name:    "logical partition",
			request: &Request{Partition: "p4l2", Path: "etc/fstab"},
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, KindLogical, resp.PartitionKind)
				require.NotNil(t, resp.Logical)
				assert.Equal(t, uint64(2), *resp.Logical)
				assert.Equal(t, uint8(4), resp.Primary)
				assert.Equal(t, []string{"etc", "fstab"}, resp.Node.Path)
			},
		},
		{
			name:    "single component has no parent",
			request: &Request{Partition: "p2", Path: "vmlinuz"},
			validate: func(t *testing.T, resp *Response) {
				assert.Empty(t, resp.Parent)
				assert.Equal(t, 1, resp.Depth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Handle(quietContext(), tt.request)
			require.NoError(t, err)
			tt.validate(t, resp)
		})
	}
}

func TestHandle_InvalidRequest(t *testing.T) {
	requests := map[string]*Request{
		"missing partition": {Path: "/etc/hosts"},
		"bad partition":     {Partition: "sda1", Path: "/etc/hosts"},
		"slot out of range": {Partition: "p300", Path: "/etc/hosts"},
		"empty path":        {Partition: "p1", Path: ""},
		"root only":         {Partition: "p1", Path: "///"},
	}

	for name, req := range requests {
		t.Run(name, func(t *testing.T) {
			_, err := Handle(quietContext(), req)
			require.Error(t, err)
			assert.Equal(t, app.ErrCodeInvalidInput, app.ErrorCode(err))
		})
	}
}

func TestFormatOutput(t *testing.T) {
	resp, err := Handle(quietContext(), &Request{Partition: "p2l5", Path: "/boot/grub/grub.cfg"})
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatOutput(&buf, resp, "table"))
		assert.Contains(t, buf.String(), "LOCATION")
		assert.Contains(t, buf.String(), "p2l5:/boot/grub/grub.cfg")
		assert.Contains(t, buf.String(), "logical")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatOutput(&buf, resp, "json"))

		var decoded struct {
			Node struct {
				Path      []string `json:"path"`
				Partition string   `json:"partition"`
			} `json:"node"`
			Logical uint64 `json:"logical"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "p2l5", decoded.Node.Partition)
		assert.Equal(t, []string{"boot", "grub", "grub.cfg"}, decoded.Node.Path)
		assert.Equal(t, uint64(5), decoded.Logical)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatOutput(&buf, resp, "yaml"))
		assert.Contains(t, buf.String(), "partition: p2l5")
		assert.Contains(t, buf.String(), "partition_kind: logical")
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, FormatOutput(io.Discard, resp, "csv"))
	})
}
