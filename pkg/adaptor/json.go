package adaptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/deploymenttheory/go-wetfmt/pkg/wet"
)

const jsonIndent = "  "

// JSONOptions configures a JSONAdaptor
type JSONOptions struct {
	// Pretty indents nested values by two spaces per level
	Pretty bool
}

// JSONAdaptor encodes wet values as JSON text
type JSONAdaptor struct {
	opts JSONOptions
}

// NewJSONAdaptor creates a JSON adaptor with the given options
func NewJSONAdaptor(opts JSONOptions) *JSONAdaptor {
	return &JSONAdaptor{opts: opts}
}

// Name returns "json"
func (a *JSONAdaptor) Name() string { return "json" }

// Pretty reports whether output is indented
func (a *JSONAdaptor) Pretty() bool { return a.opts.Pretty }

// Serialize writes value as JSON. Mapping key order is preserved and no
// trailing newline is written.
func (a *JSONAdaptor) Serialize(value wet.Value, w io.Writer) error {
	data, err := value.MarshalJSON()
	if errors.Is(err, wet.ErrInvalidUTF8) {
		return newCodecError(a.Name(), OpSerialize, fmt.Errorf("%w: %w", ErrUnrepresentable, err))
	}
	if err != nil {
		return newCodecError(a.Name(), OpSerialize, err)
	}

	if a.opts.Pretty {
		var indented bytes.Buffer
		if err := json.Indent(&indented, data, "", jsonIndent); err != nil {
			return newCodecError(a.Name(), OpSerialize, err)
		}
		data = indented.Bytes()
	}

	if _, err := w.Write(data); err != nil {
		return newCodecError(a.Name(), OpSerialize, fmt.Errorf("write: %w", err))
	}
	return nil
}

// Deserialize parses exactly one JSON value from r. Anything other than
// whitespace after the value is rejected, as are invalid UTF-8 and string
// escapes naming unpaired surrogates.
func (a *JSONAdaptor) Deserialize(r io.Reader) (wet.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize, fmt.Errorf("read: %w", err))
	}
	if err := checkText(data); err != nil {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize, malformed(errors.New("empty input")))
	}
	if err != nil {
		return wet.Value{}, a.decodeError(err)
	}

	value, err := decodeToken(dec, tok)
	if err != nil {
		return wet.Value{}, a.decodeError(err)
	}

	// The stream must end here
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return wet.Value{}, a.decodeError(err)
		}
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize,
			malformed(fmt.Errorf("trailing data after value: %v", tok)))
	}

	return value, nil
}

// decodeError classifies a decoder failure as malformed input or a read failure
func (a *JSONAdaptor) decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrMalformed) {
		if !errors.Is(err, ErrMalformed) {
			err = malformed(err)
		}
		return newCodecError(a.Name(), OpDeserialize, err)
	}
	return newCodecError(a.Name(), OpDeserialize, fmt.Errorf("read: %w", err))
}

// nextToken reads a token inside a container, where end of input means truncation
func nextToken(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func decodeValue(dec *json.Decoder) (wet.Value, error) {
	tok, err := nextToken(dec)
	if err != nil {
		return wet.Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (wet.Value, error) {
	switch t := tok.(type) {
	case nil:
		return wet.Null(), nil
	case bool:
		return wet.Bool(t), nil
	case json.Number:
		return wet.ParseNumber(t.String())
	case string:
		return wet.String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeSequence(dec)
		case '{':
			return decodeMapping(dec)
		}
	}
	return wet.Value{}, malformed(fmt.Errorf("unexpected token %v", tok))
}

func decodeSequence(dec *json.Decoder) (wet.Value, error) {
	var items []wet.Value
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return wet.Value{}, err
		}
		items = append(items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return wet.Value{}, err
	}
	return wet.Sequence(items...), nil
}

func decodeMapping(dec *json.Decoder) (wet.Value, error) {
	m := wet.NewMap()
	for dec.More() {
		tok, err := nextToken(dec)
		if err != nil {
			return wet.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return wet.Value{}, malformed(fmt.Errorf("expected object key, got %v", tok))
		}
		value, err := decodeValue(dec)
		if err != nil {
			return wet.Value{}, err
		}
		m.Set(key, value)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return wet.Value{}, err
	}
	return wet.Mapping(m), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := nextToken(dec)
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return malformed(fmt.Errorf("expected %q, got %v", want, tok))
	}
	return nil
}

// checkText rejects input that the decoder would otherwise accept by
// substituting U+FFFD: invalid UTF-8 and \u escapes of lone surrogates.
func checkText(data []byte) error {
	if !utf8.Valid(data) {
		return malformed(errors.New("input is not valid utf-8"))
	}

	inString := false
	for i := 0; i < len(data); i++ {
		switch c := data[i]; {
		case c == '"':
			inString = !inString
		case c == '\\' && inString:
			if i+1 < len(data) && data[i+1] == 'u' {
				n, err := checkEscape(data, i)
				if err != nil {
					return err
				}
				i += n - 1
				continue
			}
			// skip the escaped character
			i++
		}
	}
	return nil
}

// checkEscape validates the \u escape at data[i:] and returns its length,
// including a trailing low surrogate escape when one is required.
func checkEscape(data []byte, i int) (int, error) {
	r, ok := hexRune(data[i:])
	if !ok {
		// malformed escapes are reported by the decoder
		return 2, nil
	}
	if !utf16.IsSurrogate(r) {
		return 6, nil
	}
	if r < 0xdc00 {
		if low, ok := hexRune(data[i+6:]); ok && utf16.DecodeRune(r, low) != utf8.RuneError {
			return 12, nil
		}
	}
	return 0, malformed(fmt.Errorf("unpaired surrogate escape %s", data[i:i+6]))
}

// hexRune decodes a \uXXXX escape at the start of b
func hexRune(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	var r rune
	for _, c := range b[2:6] {
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}
