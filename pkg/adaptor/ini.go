package adaptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/ini.v1"

	"github.com/deploymenttheory/go-wetfmt/pkg/wet"
)

// INIAdaptor encodes wet values as INI text.
//
// The representable shape is a mapping whose scalar entries live in the
// unnamed default section and whose mapping entries become named sections
// holding scalars. A scalar sequence of two or more items is written as a
// repeated key. Everything read back is text: scalars decode to strings and
// repeated keys to sequences of strings.
type INIAdaptor struct{}

// NewINIAdaptor creates an INI adaptor
func NewINIAdaptor() *INIAdaptor {
	return &INIAdaptor{}
}

// Name returns "ini"
func (a *INIAdaptor) Name() string { return "ini" }

func (a *INIAdaptor) loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
	}
}

// Serialize writes value as INI. Shapes the grammar cannot carry, and
// names or values that would not read back unchanged, are rejected before
// anything is written.
func (a *INIAdaptor) Serialize(value wet.Value, w io.Writer) error {
	root, ok := value.AsMap()
	if !ok {
		return newCodecError(a.Name(), OpSerialize,
			unrepresentable("", fmt.Sprintf("top level must be a mapping, got %s", value.Kind())))
	}

	file := ini.Empty(a.loadOptions())
	defaults := file.Section(ini.DefaultSection)

	// want is value as it should read back: every scalar as text
	want := wet.NewMap()

	// Default-section keys are written before any named section, so they
	// go in first regardless of their position in the mapping.
	var sections []wet.Entry
	for _, entry := range root.Entries() {
		if entry.Value.Kind() == wet.KindMapping {
			sections = append(sections, entry)
			continue
		}
		text, err := writeKey(defaults, entry.Key, entry.Value, entry.Key)
		if err != nil {
			return newCodecError(a.Name(), OpSerialize, err)
		}
		want.Set(entry.Key, text)
	}

	for _, entry := range sections {
		if entry.Key == ini.DefaultSection {
			return newCodecError(a.Name(), OpSerialize,
				unrepresentable(entry.Key, "section name is reserved"))
		}
		if err := checkName(entry.Key, entry.Key, "section name"); err != nil {
			return newCodecError(a.Name(), OpSerialize, err)
		}
		section, err := file.NewSection(entry.Key)
		if err != nil {
			return newCodecError(a.Name(), OpSerialize, err)
		}
		fields, _ := entry.Value.AsMap()
		wantFields := wet.NewMap()
		for _, field := range fields.Entries() {
			path := entry.Key + "." + field.Key
			if field.Value.Kind() == wet.KindMapping {
				return newCodecError(a.Name(), OpSerialize,
					unrepresentable(path, "mappings nest at most one level deep"))
			}
			text, err := writeKey(section, field.Key, field.Value, path)
			if err != nil {
				return newCodecError(a.Name(), OpSerialize, err)
			}
			wantFields.Set(field.Key, text)
		}
		want.Set(entry.Key, wet.Mapping(wantFields))
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return newCodecError(a.Name(), OpSerialize, err)
	}
	if err := a.verify(buf.Bytes(), want); err != nil {
		return newCodecError(a.Name(), OpSerialize, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return newCodecError(a.Name(), OpSerialize, fmt.Errorf("write: %w", err))
	}
	return nil
}

// verify parses text back and reports the first entry that differs from want
func (a *INIAdaptor) verify(text []byte, want *wet.Map) error {
	file, err := ini.LoadSources(a.loadOptions(), text)
	if err != nil {
		return unrepresentable("", fmt.Sprintf("encoded text does not parse: %v", err))
	}
	if path, ok := sameEntries(want, readFile(file), ""); !ok {
		return unrepresentable(path, "does not read back unchanged")
	}
	return nil
}

// sameEntries compares two mappings and returns the path of the first
// entry present in only one of them or holding different values
func sameEntries(want, got *wet.Map, prefix string) (string, bool) {
	for _, entry := range want.Entries() {
		path := joinPath(prefix, entry.Key)
		have, ok := got.Get(entry.Key)
		if !ok {
			return path, false
		}
		wantFields, wantIsMap := entry.Value.AsMap()
		haveFields, haveIsMap := have.AsMap()
		if wantIsMap && haveIsMap {
			if p, ok := sameEntries(wantFields, haveFields, path); !ok {
				return p, false
			}
			continue
		}
		if !entry.Value.Equal(have) {
			return path, false
		}
	}
	for _, key := range got.Keys() {
		if _, ok := want.Get(key); !ok {
			return joinPath(prefix, key), false
		}
	}
	return "", true
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// checkName rejects section and key names that cannot be written on one line
func checkName(name, path, what string) error {
	switch {
	case name == "":
		return unrepresentable(path, what+" must not be empty")
	case !utf8.ValidString(name):
		return unrepresentable(path, what+" is not valid utf-8")
	case strings.ContainsAny(name, "\r\n"):
		return unrepresentable(path, what+" spans lines")
	}
	return nil
}

// checkKeyName adds the rules for key names, which the parser trims and
// may take for comments or section headers
func checkKeyName(name, path string) error {
	if err := checkName(name, path, "key"); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(name) != name:
		return unrepresentable(path, "key has surrounding whitespace")
	case name[0] == '#' || name[0] == ';':
		return unrepresentable(path, "key would be read as a comment")
	case name[0] == '[':
		return unrepresentable(path, "key would be read as a section header")
	case strings.Contains(name, "`") && strings.ContainsAny(name, "\"=:"):
		// quoted keys use either backticks or triple quotes, never both
		return unrepresentable(path, "key mixes backticks with quotes or delimiters")
	}
	return nil
}

// writeKey adds a scalar key, or a repeated key for a scalar sequence, and
// returns the value expected when the key is read back
func writeKey(section *ini.Section, name string, value wet.Value, path string) (wet.Value, error) {
	if err := checkKeyName(name, path); err != nil {
		return wet.Value{}, err
	}

	if value.Kind() != wet.KindSequence {
		text, err := scalarText(value, path)
		if err != nil {
			return wet.Value{}, err
		}
		if _, err := section.NewKey(name, text); err != nil {
			return wet.Value{}, err
		}
		return wet.String(text), nil
	}

	items, _ := value.AsSequence()
	switch len(items) {
	case 0:
		return wet.Value{}, unrepresentable(path, "empty sequence has no encoding")
	case 1:
		return wet.Value{}, unrepresentable(path, "single-item sequence reads back as a scalar")
	}

	texts := make([]string, len(items))
	want := make([]wet.Value, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if !item.Kind().IsScalar() {
			return wet.Value{}, unrepresentable(itemPath, fmt.Sprintf("sequence items must be scalars, got %s", item.Kind()))
		}
		text, err := scalarText(item, itemPath)
		if err != nil {
			return wet.Value{}, err
		}
		if text == "" {
			return wet.Value{}, unrepresentable(itemPath, "empty strings are dropped from repeated keys")
		}
		texts[i] = text
		want[i] = wet.String(text)
	}

	key, err := section.NewKey(name, texts[0])
	if err != nil {
		return wet.Value{}, err
	}
	for _, text := range texts[1:] {
		if err := key.AddShadow(text); err != nil {
			return wet.Value{}, err
		}
	}
	return wet.Sequence(want...), nil
}

func scalarText(value wet.Value, path string) (string, error) {
	if value.IsNull() {
		return "", unrepresentable(path, "null has no encoding")
	}
	text, ok := value.Text()
	if !ok {
		return "", unrepresentable(path, fmt.Sprintf("expected scalar, got %s", value.Kind()))
	}
	if !utf8.ValidString(text) {
		return "", unrepresentable(path, "value is not valid utf-8")
	}
	return text, nil
}

// Deserialize reads the whole of r and parses it as INI
func (a *INIAdaptor) Deserialize(r io.Reader) (wet.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize, fmt.Errorf("read: %w", err))
	}
	if !utf8.Valid(data) {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize,
			malformed(errors.New("input is not valid utf-8")))
	}

	file, err := ini.LoadSources(a.loadOptions(), data)
	if err != nil {
		return wet.Value{}, newCodecError(a.Name(), OpDeserialize, malformed(err))
	}
	return wet.Mapping(readFile(file)), nil
}

// readFile converts a parsed file: default section keys at the top level,
// one mapping per named section
func readFile(file *ini.File) *wet.Map {
	root := wet.NewMap()
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			readKeys(root, section)
			continue
		}
		fields := wet.NewMap()
		readKeys(fields, section)
		root.Set(section.Name(), wet.Mapping(fields))
	}
	return root
}

func readKeys(dst *wet.Map, section *ini.Section) {
	for _, key := range section.Keys() {
		values := key.ValueWithShadows()
		switch len(values) {
		case 0:
			// empty values are left out of the shadow list
			dst.Set(key.Name(), wet.String(key.Value()))
			continue
		case 1:
			dst.Set(key.Name(), wet.String(values[0]))
			continue
		}
		items := make([]wet.Value, len(values))
		for i, v := range values {
			items[i] = wet.String(v)
		}
		dst.Set(key.Name(), wet.Sequence(items...))
	}
}
