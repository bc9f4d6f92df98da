package route

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translator maps a source-locale station or line name to the display
// locale. Unknown names are returned unchanged.
type Translator interface {
	Translate(name string) string
}

// Identity is the Translator that changes nothing.
type Identity struct{}

func (Identity) Translate(name string) string { return name }

// MapTranslator looks names up in a fixed table.
type MapTranslator map[string]string

func (m MapTranslator) Translate(name string) string {
	key := strings.TrimSpace(name)
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return name
}

// translationFile is the YAML layout of a translation table.
type translationFile struct {
	Stations map[string]string `yaml:"stations"`
	Lines    map[string]string `yaml:"lines"`
}

// LoadTranslations parses a YAML table with "stations" and "lines"
// sections. A name present in both takes the line translation.
func LoadTranslations(r io.Reader) (MapTranslator, error) {
	var f translationFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding translations: %w", err)
	}
	out := make(MapTranslator, len(f.Stations)+len(f.Lines))
	for k, v := range f.Stations {
		out[k] = v
	}
	for k, v := range f.Lines {
		out[k] = v
	}
	return out, nil
}

// LoadTranslationFile reads a table from path. An empty path yields the
// Identity translator.
func LoadTranslationFile(path string) (Translator, error) {
	if path == "" {
		return Identity{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening translations: %w", err)
	}
	defer f.Close()
	return LoadTranslations(f)
}
