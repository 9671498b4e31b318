// Package distcache stores scanned character distributions on disk so that
// clustering and script comparisons can skip rescanning the corpora.
package distcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"phonosim/internal/script"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// ErrSchema is returned when a cached payload was written by another schema.
var ErrSchema = errors.New("distcache: schema mismatch")

// Digest identifies a corpus directory state.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Payload is the on-disk form of a scanned corpus directory. Slices are
// parallel: Langs[i] has Lines[i], Chars[i] and Counts[i].
type Payload struct {
	Schema uint16
	Key    Digest
	Prefix string

	Langs  []string
	Lines  []uint32
	Chars  [][]int32
	Counts [][]uint32
}

// Fingerprint hashes the prefix and every file's name, size and mtime.
// Paths must be given in a deterministic order.
func Fingerprint(prefix string, paths []string) (Digest, error) {
	h := sha256.New()
	_, _ = h.Write([]byte(prefix))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return Digest{}, err
		}
		_, _ = fmt.Fprintf(h, "\x00%s\x00%d\x00%d", filepath.Base(p), info.Size(), info.ModTime().UnixNano())
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

// FromDists packs distributions and corpus sizes into a Payload with
// languages and characters in sorted order.
func FromDists(key Digest, prefix string, dists map[string]script.Distribution, sizes map[string]int) (*Payload, error) {
	langs := make([]string, 0, len(dists))
	for lang := range dists {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	p := &Payload{
		Schema: schemaVersion,
		Key:    key,
		Prefix: prefix,
		Langs:  langs,
		Lines:  make([]uint32, len(langs)),
		Chars:  make([][]int32, len(langs)),
		Counts: make([][]uint32, len(langs)),
	}
	for i, lang := range langs {
		lines, err := safecast.Conv[uint32](sizes[lang])
		if err != nil {
			return nil, fmt.Errorf("%s: line count: %w", lang, err)
		}
		p.Lines[i] = lines

		d := dists[lang]
		chars := make([]rune, 0, len(d))
		for r := range d {
			chars = append(chars, r)
		}
		sort.Slice(chars, func(a, b int) bool { return chars[a] < chars[b] })
		p.Chars[i] = make([]int32, len(chars))
		p.Counts[i] = make([]uint32, len(chars))
		for j, r := range chars {
			n, err := safecast.Conv[uint32](d[r])
			if err != nil {
				return nil, fmt.Errorf("%s: count of %q: %w", lang, r, err)
			}
			p.Chars[i][j] = r
			p.Counts[i][j] = n
		}
	}
	return p, nil
}

// Dists unpacks the payload.
func (p *Payload) Dists() (map[string]script.Distribution, map[string]int, error) {
	if p.Schema != schemaVersion {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, schemaVersion)
	}
	if len(p.Lines) != len(p.Langs) || len(p.Chars) != len(p.Langs) || len(p.Counts) != len(p.Langs) {
		return nil, nil, fmt.Errorf("distcache: corrupt payload: %d langs, %d sizes, %d char lists", len(p.Langs), len(p.Lines), len(p.Chars))
	}
	dists := make(map[string]script.Distribution, len(p.Langs))
	sizes := make(map[string]int, len(p.Langs))
	for i, lang := range p.Langs {
		if len(p.Chars[i]) != len(p.Counts[i]) {
			return nil, nil, fmt.Errorf("distcache: corrupt payload for %s", lang)
		}
		d := make(script.Distribution, len(p.Chars[i]))
		for j, r := range p.Chars[i] {
			d[r] = int(p.Counts[i][j])
		}
		dists[lang] = d
		sizes[lang] = int(p.Lines[i])
	}
	return dists, sizes, nil
}

// Cache keeps payloads keyed by Digest under one directory.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache at dir, or at $XDG_CACHE_HOME/app (falling back to
// ~/.cache/app) when dir is empty.
func Open(dir, app string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir is the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "dists", key.String()+".mp")
}

// Put stores p under key.
func (c *Cache) Put(key Digest, p *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteFile(c.pathFor(key), p)
}

// Get loads the payload for key. A missing entry is (nil, false, nil); an
// entry from another schema is reported as ErrSchema.
func (c *Cache) Get(key Digest) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// WriteFile encodes p to path through a temp file and rename.
func WriteFile(path string, p *Payload) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(p); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile decodes a payload from path and checks its schema.
func ReadFile(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", path, ErrSchema, p.Schema, schemaVersion)
	}
	return &p, nil
}
