package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names an encoding of a Suite.
type Format string

const (
	// FormatYAML outputs as YAML (default)
	FormatYAML Format = "yaml"
	// FormatJSON outputs as indented JSON
	FormatJSON Format = "json"
	// FormatMsgpack outputs as MessagePack
	FormatMsgpack Format = "msgpack"
)

// Write encodes s to w in the given format. The empty format means YAML.
func Write(w io.Writer, s Suite, format Format) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("export: yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("export: json: %w", err)
		}
		return nil
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("export: msgpack: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteFile writes s to path; an empty path writes to stdout.
func WriteFile(path string, s Suite, format Format) error {
	if path == "" {
		return Write(os.Stdout, s, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, s, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Read decodes a Suite previously produced by Write.
func Read(r io.Reader, format Format) (Suite, error) {
	var s Suite
	var err error
	switch format {
	case FormatYAML, "":
		err = yaml.NewDecoder(r).Decode(&s)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&s)
	default:
		return Suite{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return Suite{}, fmt.Errorf("export: decode %s: %w", format, err)
	}

	return s, nil
}
