package forms

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSchema is the on-disk layout of a mapping file:
//
//	forms:
//	  "Contact Form": sales@example.com
//	  "Support Ticket": support@example.com
type fileSchema struct {
	Forms map[string]string `yaml:"forms"`
}

// LoadFile reads a YAML mapping file and builds a Registry from it.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode builds a Registry from a YAML document. Unknown top-level keys are
// rejected so typos surface at startup.
func Decode(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc fileSchema
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, errors.Join(ErrDecodeFile, err)
	}
	return New(doc.Forms)
}
