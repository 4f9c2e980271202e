package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
)

// Encoding is a definition file encoding.
type Encoding string

// Supported encodings.
const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
	TOML Encoding = "toml"
)

// Encodings lists the supported encodings.
var Encodings = []string{string(JSON), string(YAML), string(TOML)}

// EncodingFromPath infers the encoding from a file extension
// (.json, .yaml, .yml or .toml).
func EncodingFromPath(path string) (Encoding, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = string(YAML)
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "definition encoding", ext, Encodings); err != nil {
		return "", err
	}
	return Encoding(ext), nil
}

// ParseEncoding accepts an encoding name or a media type such as
// "application/json", "application/yaml" or "application/toml".
// The empty string selects JSON.
func ParseEncoding(s string) (Encoding, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimPrefix(s, "application/")
	s = strings.TrimPrefix(s, "text/")
	s = strings.TrimPrefix(s, "x-")
	switch s {
	case "", string(JSON):
		return JSON, nil
	case string(YAML), "yml":
		return YAML, nil
	case string(TOML):
		return TOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q", s)
}

// Read decodes a definition from r.
//
// The document is first decoded into a generic map and then mapped onto
// [Definition], so all encodings share one schema. Unknown keys are
// rejected. Read does not close r.
func Read(r io.Reader, enc Encoding) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "read definition")
	}

	raw := map[string]any{}
	switch enc {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case TOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q", enc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode %s", enc)
	}

	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "definition decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode %s", enc)
	}
	return &def, nil
}

// Import reads the definition file at path, choosing the decoder by
// extension. A missing file fails with FILE_NOT_FOUND.
func Import(path string) (*Definition, error) {
	enc, err := EncodingFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, enc)
}

// ImportMachine reads the definition at path and builds its automaton.
func ImportMachine(path string) (*fa.Machine, error) {
	def, err := Import(path)
	if err != nil {
		return nil, err
	}
	return def.Machine()
}
