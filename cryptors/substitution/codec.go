package substitution

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/friendsofgo/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the document format of an exported Map.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFor picks the format from a file name: .yaml and .yml select YAML,
// anything else JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Export writes m as a flat key/value document, one entry per cipher symbol.
func Export(w io.Writer, m Map, f Format) error {
	doc := make(map[string]string, len(m))
	for k, v := range m {
		doc[string(k)] = string(v)
	}

	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encoding substitutions")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "encoding substitutions")
	}
}

// Import reads a document written by Export.  Every key and value must be a
// single letter; any other entry fails the import with
// cryptors.ErrInvalidInput.
func Import(r io.Reader, f Format) (Map, error) {
	doc := make(map[string]string)

	var err error
	switch f {
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	default:
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrapf(cryptors.ErrInvalidInput, "decoding substitutions: %v", err)
	}

	m := make(Map, len(doc))
	for k, v := range doc {
		c, ok := singleLetter(k)
		if !ok {
			return nil, errors.Wrapf(cryptors.ErrInvalidInput, "substitution key %q is not a single letter", k)
		}
		p, ok := singleLetter(v)
		if !ok {
			return nil, errors.Wrapf(cryptors.ErrInvalidInput, "substitution value %q for %q is not a single letter", v, k)
		}
		m.Set(c, p)
	}

	return m, nil
}

// ParseAssignment parses an edit of the form "C=P".  An empty right hand side
// ("C=") is returned with p == 0 and means remove the mapping.
func ParseAssignment(s string) (c, p rune, err error) {
	kv := strings.SplitN(strings.TrimSpace(s), "=", 2)
	if len(kv) != 2 {
		return 0, 0, errors.Wrapf(cryptors.ErrInvalidInput, "substitution %q is not of the form C=P", s)
	}

	c, ok := singleLetter(kv[0])
	if !ok {
		return 0, 0, errors.Wrapf(cryptors.ErrInvalidInput, "substitution key %q is not a single letter", kv[0])
	}
	if kv[1] == "" {
		return unicode.ToUpper(c), 0, nil
	}
	if p, ok = singleLetter(kv[1]); !ok {
		return 0, 0, errors.Wrapf(cryptors.ErrInvalidInput, "substitution value %q is not a single letter", kv[1])
	}

	return unicode.ToUpper(c), unicode.ToUpper(p), nil
}

func singleLetter(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, unicode.IsLetter(r)
}
