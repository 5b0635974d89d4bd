package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-wetfmt/pkg/adaptor"
	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/format"
	"github.com/deploymenttheory/go-wetfmt/pkg/wet"
)

// Handle processes a conversion request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()
	requestID := uuid.NewString()
	logger := ctx.Logger().With("request_id", requestID)

	// 1. Validate request
	from, to, err := req.validate()
	if err != nil {
		return nil, err
	}

	logger.Debug("starting conversion", "input", req.InputPath, "from", from, "to", to)
	ctx.Progress("Reading input...", 10)

	// 2. Decode the source document
	value, err := readDocument(ctx, req.InputPath, from)
	if err != nil {
		logger.Error("decode failed", "input", req.InputPath, "error", err)
		return nil, err
	}

	ctx.Progress("Encoding output...", 50)

	// 3. Encode in the target format
	content, err := encodeDocument(value, to, req.Pretty)
	if err != nil {
		logger.Error("encode failed", "to", to, "error", err)
		return nil, app.NewError(app.ErrCodeCodec, fmt.Sprintf("cannot encode document as %s", to), err)
	}

	// 4. Write the result unless it is meant for standard output
	response := &Response{
		RequestID:  requestID,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		From:       from,
		To:         to,
		RootKind:   value.Kind().String(),
		Entries:    value.Len(),
		Bytes:      len(content),
		Content:    content,
	}
	if !response.ToStdout() {
		ctx.Progress("Writing output...", 80)
		if err := writeDocument(req.OutputPath, content, req.Overwrite); err != nil {
			logger.Error("write failed", "output", req.OutputPath, "error", err)
			return nil, err
		}
	}

	response.Duration = time.Since(startTime)
	ctx.Progress("Complete", 100)
	logger.Debug("conversion completed", "bytes", response.Bytes, "duration", response.Duration)

	return response, nil
}

// readDocument opens path (or standard input) and decodes it
func readDocument(ctx *app.Context, path string, from format.FileFormat) (wet.Value, error) {
	var r io.Reader
	if path == StdioPath {
		r = ctx.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return wet.Value{}, app.NewError(app.ErrCodeIO, "cannot open input", err)
		}
		defer f.Close()
		r = f
	}

	value, err := format.Deserialize(r, from)
	if err != nil {
		return wet.Value{}, app.NewError(app.ErrCodeCodec, fmt.Sprintf("cannot decode %s input", from), err)
	}
	return value, nil
}

// encodeDocument serializes value; indented JSON bypasses the compact dispatch adaptor
func encodeDocument(value wet.Value, to format.FileFormat, pretty bool) (string, error) {
	if to != format.JSON || !pretty {
		return format.Serialize(value, to)
	}

	var buf bytes.Buffer
	if err := adaptor.NewJSONAdaptor(adaptor.JSONOptions{Pretty: true}).Serialize(value, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeDocument(path, content string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return app.NewError(app.ErrCodeIO, "output file exists, use --overwrite to replace it", err)
		}
		return app.NewError(app.ErrCodeIO, "cannot create output", err)
	}

	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return app.NewError(app.ErrCodeIO, "cannot write output", err)
	}
	if err := f.Close(); err != nil {
		return app.NewError(app.ErrCodeIO, "cannot write output", err)
	}
	return nil
}
