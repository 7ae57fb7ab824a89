package sapling

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/tidwall/gjson"
)

// ManifestEntry names one asset and where to load it from.
type ManifestEntry struct {
	Name string
	Src  string
}

// Manifest lists the assets of a load batch:
//
//	{
//	  "images": [{"name": "hero", "src": "img/hero.png"}],
//	  "audio":  [{"name": "theme", "src": "sfx/theme.wav"}]
//	}
type Manifest struct {
	Images []ManifestEntry
	Audio  []ManifestEntry
}

// ErrManifest is wrapped by every manifest parse error.
var ErrManifest = errors.New("sapling: invalid manifest")

// ParseManifest reads a JSON manifest. Every entry needs a non-empty name
// and src; unknown keys are ignored.
func ParseManifest(data []byte) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return Manifest{}, fmt.Errorf("%w: malformed JSON", ErrManifest)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Manifest{}, fmt.Errorf("%w: top level must be an object", ErrManifest)
	}

	var m Manifest
	var err error
	if m.Images, err = manifestEntries(root, "images"); err != nil {
		return Manifest{}, err
	}
	if m.Audio, err = manifestEntries(root, "audio"); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func manifestEntries(root gjson.Result, key string) ([]ManifestEntry, error) {
	res := root.Get(key)
	if !res.Exists() {
		return nil, nil
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: %q must be an array", ErrManifest, key)
	}
	var entries []ManifestEntry
	var err error
	res.ForEach(func(_, v gjson.Result) bool {
		e := ManifestEntry{Name: v.Get("name").String(), Src: v.Get("src").String()}
		if e.Name == "" || e.Src == "" {
			err = fmt.Errorf("%w: %s[%d] needs name and src", ErrManifest, key, len(entries))
			return false
		}
		entries = append(entries, e)
		return true
	})
	return entries, err
}

// LoadManifest reads and parses the manifest at path in fsys.
func LoadManifest(fsys fs.FS, path string) (Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Len returns the number of entries across both kinds.
func (m Manifest) Len() int { return len(m.Images) + len(m.Audio) }
