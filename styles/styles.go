// Package styles is the library of recorded handwriting samples used to
// prime the model. A library is a directory holding a styles.yaml
// manifest and one stroke file per style.
package styles

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/juruen/rmscribe/encoding/strokes"
	"github.com/juruen/rmscribe/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const ManifestName = "styles.yaml"

var ErrStyleNotFound = errors.New("style not found")

// Style is a recorded stroke sequence and the text it spells.
type Style struct {
	ID            int
	Strokes       strokes.Sequence
	Transcription string
}

type manifestEntry struct {
	ID            int    `yaml:"id"`
	Transcription string `yaml:"transcription"`
	Strokes       string `yaml:"strokes"`
}

type manifest struct {
	Styles []manifestEntry `yaml:"styles"`
}

// Library holds every style of a directory in memory. It is read-only
// after Open and safe to share between concurrent pipelines as long as
// Add is not called.
type Library struct {
	dir    string
	styles map[int]Style
}

// New returns an empty library rooted at dir.
func New(dir string) *Library {
	return &Library{dir: dir, styles: make(map[int]Style)}
}

// Open loads the manifest in dir and every stroke file it references.
// A directory without a manifest is an empty library.
func Open(dir string) (*Library, error) {
	lib := New(dir)

	b, err := ioutil.ReadFile(filepath.Join(dir, ManifestName))
	if os.IsNotExist(err) {
		log.Trace.Printf("no style manifest in %s", dir)
		return lib, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "can't read style manifest")
	}

	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrapf(err, "can't parse %s", ManifestName)
	}

	for _, e := range m.Styles {
		if _, dup := lib.styles[e.ID]; dup {
			return nil, fmt.Errorf("style %d listed twice", e.ID)
		}
		data, err := ioutil.ReadFile(filepath.Join(dir, e.Strokes))
		if err != nil {
			return nil, errors.Wrapf(err, "style %d", e.ID)
		}
		var seq strokes.Sequence
		if err := seq.UnmarshalBinary(data); err != nil {
			return nil, errors.Wrapf(err, "style %d: %s", e.ID, e.Strokes)
		}
		lib.styles[e.ID] = Style{ID: e.ID, Strokes: seq, Transcription: e.Transcription}
	}
	log.Trace.Printf("loaded %d styles from %s", len(lib.styles), dir)

	return lib, nil
}

// Dir returns the library directory.
func (l *Library) Dir() string {
	return l.dir
}

// Load returns the style with the given id.
func (l *Library) Load(id int) (Style, error) {
	s, ok := l.styles[id]
	if !ok {
		return Style{}, errors.Wrapf(ErrStyleNotFound, "id %d", id)
	}
	return s, nil
}

// Lookup resolves one style per id, failing on the first unknown id.
func (l *Library) Lookup(ids []int) ([]Style, error) {
	out := make([]Style, len(ids))
	for i, id := range ids {
		s, err := l.Load(id)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i)
		}
		out[i] = s
	}
	return out, nil
}

// IDs returns the style ids in ascending order.
func (l *Library) IDs() []int {
	ids := make([]int, 0, len(l.styles))
	for id := range l.styles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Add inserts or replaces a style. Call Save to persist it.
func (l *Library) Add(s Style) {
	l.styles[s.ID] = s
}

// Digest is a content hash over all styles, stable across runs.
func (l *Library) Digest() (string, error) {
	hasher := sha256.New()
	for _, id := range l.IDs() {
		s := l.styles[id]
		data, err := s.Strokes.MarshalBinary()
		if err != nil {
			return "", err
		}
		binary.Write(hasher, binary.LittleEndian, int64(id))
		binary.Write(hasher, binary.LittleEndian, uint32(len(s.Transcription)))
		hasher.Write([]byte(s.Transcription))
		hasher.Write(data)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func strokeFileName(id int) string {
	return fmt.Sprintf("style-%d.strokes", id)
}

// Save writes every stroke file and then the manifest.
func (l *Library) Save() error {
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return errors.Wrap(err, "can't create style directory")
	}

	var m manifest
	for _, id := range l.IDs() {
		s := l.styles[id]
		data, err := s.Strokes.MarshalBinary()
		if err != nil {
			return err
		}
		name := strokeFileName(id)
		if err := ioutil.WriteFile(filepath.Join(l.dir, name), data, 0644); err != nil {
			return errors.Wrapf(err, "style %d", id)
		}
		m.Styles = append(m.Styles, manifestEntry{ID: id, Transcription: s.Transcription, Strokes: name})
	}

	b, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	log.Info.Println("writing style manifest: ", filepath.Join(l.dir, ManifestName))
	return ioutil.WriteFile(filepath.Join(l.dir, ManifestName), b, 0644)
}
