package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rikushoney/abc-cmake/internal/cdecl"
	"github.com/rikushoney/abc-cmake/internal/directive"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит разобранные директивы по хешу содержимого файла.
// Только для read-only сканов: generate всегда перечитывает цели.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one file's validated directives keyed by content hash.
// Source spans are not cached; restored directives carry zero spans.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path       string
	Directives []cachedDirective
}

const (
	cachedKindAliasOf uint8 = iota + 1
	cachedKindBasedOn
	cachedKindDefinedIn
	cachedKindDefinedInList
)

type cachedField struct {
	Name string
	Type string
}

type cachedRecord struct {
	Name   string
	Fields []cachedField
}

type cachedParam struct {
	Name string
	Type string
}

type cachedFunc struct {
	Name   string
	Return string
	Params []cachedParam
}

type cachedDirective struct {
	Kind      uint8
	Raw       string
	Typename  string // AliasOf
	Filename  string // BasedOn, DefinedIn, DefinedInList
	CommitSHA string // BasedOn
	Record    *cachedRecord
	Funcs     []cachedFunc
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "files".
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Lookup returns the cached directives for a content hash. A miss, a
// schema mismatch, or any read error all come back as a plain miss.
func (c *DiskCache) Lookup(key [32]byte) ([]directive.Directive, bool) {
	var payload DiskPayload
	found, err := c.get(key, &payload)
	if err != nil || !found {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return restoreDirectives(payload.Directives), true
}

// Store caches a file's validated directives. Errors are swallowed: the
// cache is an optimization, never a correctness dependency.
func (c *DiskCache) Store(key [32]byte, path string, directives []directive.Directive) {
	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Path:       path,
		Directives: flattenDirectives(directives),
	}
	_ = c.put(key, payload)
}

func (c *DiskCache) put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

func (c *DiskCache) get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// flattenDirectives converts directives to the cacheable representation
func flattenDirectives(directives []directive.Directive) []cachedDirective {
	out := make([]cachedDirective, 0, len(directives))
	for _, d := range directives {
		switch d := d.(type) {
		case *directive.AliasOf:
			out = append(out, cachedDirective{
				Kind:     cachedKindAliasOf,
				Raw:      d.Raw(),
				Typename: d.Typename,
				Record:   flattenRecord(d.Alias),
			})
		case *directive.BasedOn:
			out = append(out, cachedDirective{
				Kind:      cachedKindBasedOn,
				Raw:       d.Raw(),
				Filename:  d.Filename,
				CommitSHA: d.CommitSHA,
			})
		case *directive.DefinedIn:
			out = append(out, cachedDirective{
				Kind:     cachedKindDefinedIn,
				Raw:      d.Raw(),
				Filename: d.Filename,
				Funcs:    []cachedFunc{flattenFunc(d.Signature)},
			})
		case *directive.DefinedInList:
			funcs := make([]cachedFunc, len(d.Signatures))
			for i, sig := range d.Signatures {
				funcs[i] = flattenFunc(sig)
			}
			out = append(out, cachedDirective{
				Kind:     cachedKindDefinedInList,
				Raw:      d.Raw(),
				Filename: d.Filename,
				Funcs:    funcs,
			})
		case *directive.DefinedInEnd:
			// валидатор их уже выбросил
		default:
			panic(fmt.Sprintf("unhandled directive %T", d))
		}
	}
	return out
}

// restoreDirectives converts cached payloads back to directives (zero spans)
func restoreDirectives(cached []cachedDirective) []directive.Directive {
	out := make([]directive.Directive, 0, len(cached))
	for _, cd := range cached {
		switch cd.Kind {
		case cachedKindAliasOf:
			out = append(out, directive.MakeAliasOf(cd.Raw, cd.Typename, restoreRecord(cd.Record)))
		case cachedKindBasedOn:
			out = append(out, directive.MakeBasedOn(cd.Raw, cd.Filename, cd.CommitSHA))
		case cachedKindDefinedIn:
			var sig *cdecl.FuncDecl
			if len(cd.Funcs) > 0 {
				sig = restoreFunc(cd.Funcs[0])
			}
			out = append(out, directive.MakeDefinedIn(cd.Raw, cd.Filename, sig))
		case cachedKindDefinedInList:
			sigs := make([]*cdecl.FuncDecl, len(cd.Funcs))
			for i, cf := range cd.Funcs {
				sigs[i] = restoreFunc(cf)
			}
			out = append(out, directive.MakeDefinedInList(cd.Raw, cd.Filename, sigs))
		}
	}
	return out
}

func flattenRecord(rec *cdecl.RecordDecl) *cachedRecord {
	if rec == nil {
		return nil
	}
	out := &cachedRecord{Name: rec.Name, Fields: make([]cachedField, len(rec.Fields))}
	for i, f := range rec.Fields {
		out.Fields[i] = cachedField{Name: f.Name, Type: f.Type}
	}
	return out
}

func restoreRecord(rec *cachedRecord) *cdecl.RecordDecl {
	if rec == nil {
		return nil
	}
	out := &cdecl.RecordDecl{Name: rec.Name, Fields: make([]cdecl.Field, len(rec.Fields))}
	for i, f := range rec.Fields {
		out.Fields[i] = cdecl.Field{Name: f.Name, Type: f.Type}
	}
	return out
}

func flattenFunc(fn *cdecl.FuncDecl) cachedFunc {
	out := cachedFunc{Name: fn.Name, Return: fn.Return, Params: make([]cachedParam, len(fn.Params))}
	for i, p := range fn.Params {
		out.Params[i] = cachedParam{Name: p.Name, Type: p.Type}
	}
	return out
}

func restoreFunc(fn cachedFunc) *cdecl.FuncDecl {
	out := &cdecl.FuncDecl{Name: fn.Name, Return: fn.Return, Params: make([]cdecl.Param, len(fn.Params))}
	for i, p := range fn.Params {
		out.Params[i] = cdecl.Param{Name: p.Name, Type: p.Type}
	}
	return out
}
