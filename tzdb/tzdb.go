// Package tzdb reads compiled IANA time zone databases and serves
// offset and transition queries over them. A Database wraps any fs.FS
// holding TZif files laid out the usual way, one file per zone named
// by its identifier; System locates the host's copy.
package tzdb

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/lockels/temporal/iso"
	"github.com/lockels/temporal/tz"
	"github.com/lockels/temporal/tzif"
)

// ErrZoneNotFound is returned when an identifier matches no zone in
// the database.
var ErrZoneNotFound = errors.New("time zone not found")

const secondsPerDay = 86400

// Database answers zone queries from a single TZif file tree. It
// satisfies tz.Provider. All methods are safe for concurrent use.
type Database struct {
	fsys fs.FS

	mu     sync.Mutex
	tables map[string]*table
	names  map[string]string // lower-cased identifier to canonical
}

// New returns a Database over the given file tree.
func New(fsys fs.FS) *Database {
	return &Database{fsys: fsys, tables: make(map[string]*table)}
}

// System opens the host's time zone database. It honors $TZDIR, then
// tries the conventional zoneinfo directories, then the copy shipped
// with the Go toolchain.
func System() (*Database, error) {
	dirs := []string{
		"/usr/share/zoneinfo",
		"/usr/share/lib/zoneinfo",
		"/usr/lib/locale/TZ",
	}
	if dir := os.Getenv("TZDIR"); dir != "" {
		dirs = []string{dir}
	}
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return New(os.DirFS(dir)), nil
		}
	}
	name := filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip")
	if zr, err := zip.OpenReader(name); err == nil {
		return New(zr), nil
	}
	return nil, errors.New("tzdb: no system time zone database found")
}

var defaultDB = sync.OnceValue(func() *Database {
	db, err := System()
	if err != nil {
		// No database at all still leaves the built-in UTC zone.
		return New(emptyFS{})
	}
	return db
})

// Default returns a process-wide Database over the system files,
// falling back to one that only knows UTC when none are present.
func Default() *Database {
	return defaultDB()
}

type emptyFS struct{}

func (emptyFS) Open(string) (fs.File, error) { return nil, fs.ErrNotExist }

// NormalizeIdentifier resolves name case-insensitively against the
// database and returns the canonical spelling.
func (db *Database) NormalizeIdentifier(name string) (string, error) {
	index, err := db.index()
	if err != nil {
		return "", err
	}
	canonical, ok := index[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("tzdb: %q: %w", name, ErrZoneNotFound)
	}
	return canonical, nil
}

// OffsetAndTransitionAt implements tz.Provider.
func (db *Database) OffsetAndTransitionAt(identifier string, at iso.EpochNanoseconds) (tz.TransitionInfo, error) {
	t, err := db.load(identifier)
	if err != nil {
		return tz.TransitionInfo{}, err
	}
	s := t.lookup(at.Seconds())
	info := tz.TransitionInfo{Offset: s.zone.offset}
	if s.start != alpha {
		info.Transition = iso.FromUnix(s.start, 0)
		info.TransitionKnown = true
	}
	return info, nil
}

// PossibleInstantsAt implements tz.Provider. Candidates come back in
// ascending order: none for local times skipped by a gap, two for
// local times repeated by a fold.
func (db *Database) PossibleInstantsAt(identifier string, dt iso.DateTime) ([]iso.EpochNanoseconds, error) {
	t, err := db.load(identifier)
	if err != nil {
		return nil, err
	}
	localSec := dt.Date.EpochDays()*secondsPerDay +
		int64(dt.Time.Hour)*3600 + int64(dt.Time.Minute)*60 + int64(dt.Time.Second)
	subNanos := int64(dt.Time.Millisecond)*1e6 +
		int64(dt.Time.Microsecond)*1e3 + int64(dt.Time.Nanosecond)

	// No offset in the database strays anywhere near two days, so
	// every span that could map dt to an instant overlaps this window.
	var candidates []int64
	for _, s := range t.spansOverlapping(localSec-2*secondsPerDay, localSec+2*secondsPerDay) {
		c := localSec - s.zone.offset
		if c >= s.start && (s.end == omega || c < s.end) {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	var out []iso.EpochNanoseconds
	for i, c := range candidates {
		if i > 0 && c == candidates[i-1] {
			continue
		}
		out = append(out, iso.FromUnix(c, subNanos))
	}
	return out, nil
}

func (db *Database) load(identifier string) (*table, error) {
	canonical, err := db.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	t, ok := db.tables[canonical]
	db.mu.Unlock()
	if ok {
		return t, nil
	}

	t, err = db.readTable(canonical)
	if err != nil {
		return nil, err
	}
	db.mu.Lock()
	db.tables[canonical] = t
	db.mu.Unlock()
	return t, nil
}

func (db *Database) readTable(canonical string) (*table, error) {
	f, err := db.fsys.Open(canonical)
	if errors.Is(err, fs.ErrNotExist) && canonical == "UTC" {
		return utcTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("tzdb: opening zone %s: %w", canonical, err)
	}
	defer f.Close()
	data, err := tzif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tzdb: reading zone %s: %w", canonical, err)
	}
	return fromTZif(data), nil
}

func utcTable() *table {
	return &table{zones: []zone{{name: "UTC"}}}
}

// index lazily builds the case-insensitive identifier map by walking
// the file tree once. Zone files are those whose path starts with an
// upper-case letter and contains no dot, which skips tzdata's
// auxiliary files and the posix and right duplicates.
func (db *Database) index() (map[string]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.names != nil {
		return db.names, nil
	}
	names := map[string]string{"utc": "UTC"}
	fs.WalkDir(db.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && isZoneName(p) {
			names[strings.ToLower(p)] = p
		}
		return nil
	})
	db.names = names
	return names, nil
}

func isZoneName(p string) bool {
	return p != "" && p[0] >= 'A' && p[0] <= 'Z' && !strings.Contains(p, ".")
}
