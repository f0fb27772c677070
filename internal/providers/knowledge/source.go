package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandevgo/redwan/internal/core"
)

var (
	ErrMalformedSource = errors.New("malformed data source")
	ErrSourceNotFound  = errors.New("data source not found")
)

type Kind string

const (
	KindIntents Kind = "intents"
	KindLexicon Kind = "lexicon"
)

// extensions are tried in order when resolving a source name.
var extensions = []string{".json", ".yaml", ".yml"}

type intentFile struct {
	Intents []core.Intent `json:"intents" yaml:"intents"`
}

type lexiconFile struct {
	Dictionary []core.LexiconEntry `json:"dictionary" yaml:"dictionary"`
}

// SourceReport describes how one named source was loaded.
type SourceReport struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
	Embedded bool   `json:"embedded,omitempty"`
	Count    int    `json:"count"`
	Err      error  `json:"-"`
}

func (r SourceReport) OK() bool {
	return r.Err == nil
}

type rawSource struct {
	path     string
	embedded bool
	data     []byte
}

// readSource looks for name under dir first, then in the embedded tree.
func readSource(dir string, embedded fs.FS, kind Kind, name string) (rawSource, error) {
	if dir != "" {
		for _, ext := range extensions {
			p := filepath.Join(dir, string(kind), name+ext)
			data, err := os.ReadFile(p)
			if err == nil {
				return rawSource{path: p, data: data}, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return rawSource{path: p}, fmt.Errorf("%w: %s: %v", ErrMalformedSource, p, err)
			}
		}
	}

	if embedded != nil {
		for _, ext := range extensions {
			p := path.Join(string(kind), name+ext)
			data, err := fs.ReadFile(embedded, p)
			if err == nil {
				return rawSource{path: p, embedded: true, data: data}, nil
			}
		}
	}

	return rawSource{}, fmt.Errorf("%w: %s %q", ErrSourceNotFound, kind, name)
}

func decode(p string, data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s: empty file", ErrMalformedSource, p)
	}

	var err error
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedSource, p, err)
	}
	return nil
}

func decodeIntents(src rawSource) ([]core.Intent, error) {
	var f intentFile
	if err := decode(src.path, src.data, &f); err != nil {
		return nil, err
	}
	if f.Intents == nil {
		return nil, fmt.Errorf("%w: %s: missing \"intents\" key", ErrMalformedSource, src.path)
	}
	return f.Intents, nil
}

func decodeLexicon(src rawSource) ([]core.LexiconEntry, error) {
	var f lexiconFile
	if err := decode(src.path, src.data, &f); err != nil {
		return nil, err
	}
	if f.Dictionary == nil {
		return nil, fmt.Errorf("%w: %s: missing \"dictionary\" key", ErrMalformedSource, src.path)
	}
	return f.Dictionary, nil
}
