package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// Write encodes d and writes it to w.
// The output can be read back with [Read] using the same encoding.
func Write(d *Definition, w io.Writer, enc Encoding) error {
	switch enc {
	case JSON:
		return WriteJSON(d, w)
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(d); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		return e.Close()
	case TOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q", enc)
	}
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(d *Definition, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// Export writes d to path, choosing the encoding by extension.
// The file is only created once encoding has succeeded.
func Export(d *Definition, path string) error {
	enc, err := EncodingFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(d, &buf, enc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
