package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a scene file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name or file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("unknown scene format %q", s)
}

// Load reads a scene file, an empty path returns the default scene
// The format follows the file extension
func Load(path string) (Scene, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return Scene{}, errors.Wrap(err, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrap(err, "read scene")
	}
	scene, err := Decode(b, format)
	if err != nil {
		return Scene{}, errors.Wrap(err, path)
	}
	return scene, nil
}

// Decode parses, normalizes and validates a scene
func Decode(b []byte, format Format) (Scene, error) {
	scene := Scene{Tuning: DefaultTuning(), Floor: DefaultFloor()}

	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(b)).Decode(&scene)
	case FormatYAML:
		err = yaml.Unmarshal(b, &scene)
	default:
		return Scene{}, errors.Errorf("unknown scene format %q", format)
	}
	if err != nil {
		return Scene{}, errors.Wrapf(err, "decode %s", format)
	}

	scene.Normalize()
	if err := scene.Validate(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}

// Encode writes the scene in the given format
func Encode(w io.Writer, scene Scene, format Format) error {
	switch format {
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(scene), "encode toml")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(scene); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	}
	return errors.Errorf("unknown scene format %q", format)
}
