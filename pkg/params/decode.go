package params

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// DecodeTOML parses a TOML parameter document. Keys that are absent keep
// their Default values; unknown keys are rejected.
func DecodeTOML(data []byte) (Params, error) {
	p := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("parsing parameters: %w", err)
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadTOML reads and decodes a TOML parameter file.
func LoadTOML(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := DecodeTOML(data)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// EncodeTOML renders p as a TOML document.
func EncodeTOML(p Params) ([]byte, error) {
	return toml.Marshal(p)
}

// FromMap overlays a flat name/value mapping onto Default.
func FromMap(m map[string]any) (Params, error) {
	return Apply(Default(), m)
}

// Apply overlays a flat name/value mapping onto p. Numeric strings and
// numbers of any width are accepted, so values coming from a UI or a
// command line decode without prior conversion.
func Apply(p Params, m map[string]any) (Params, error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Params{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Params{}, fmt.Errorf("decoding parameters: %w", err)
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return Params{}, err
	}
	return p, nil
}
