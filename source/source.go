// Package source defines the read-only view the lexer and parser hold
// over a loaded compilation unit. Loading files from disk, watching
// them for changes, and rendering diagnostics against them are host
// concerns; this package only specifies the contract (FileRef,
// FileManager) and ships a minimal in-memory reference implementation
// so the front end can run standalone.
package source

import (
	"sync"

	"github.com/google/uuid"
)

// FileID is an opaque, globally-unique-within-a-run identifier for a
// loaded source buffer. It is used only by diagnostics to refer back
// to the file they came from.
type FileID uint32

// InvalidFileID is never returned by a FileManager for a real file.
const InvalidFileID FileID = 0

// FileRef is an immutable view over a loaded source buffer plus its
// stable file id. It is valid for the lifetime of the compilation.
type FileRef struct {
	id     FileID
	name   string
	source []byte
}

// NewFileRef builds a FileRef. Hosts that implement their own
// FileManager construct FileRefs this way.
func NewFileRef(id FileID, name string, src []byte) FileRef {
	return FileRef{id: id, name: name, source: src}
}

// FileID returns the file's opaque id.
func (f FileRef) FileID() FileID { return f.id }

// FileName returns the file's display name (path, "<stdin>", etc).
func (f FileRef) FileName() string { return f.name }

// Source returns the file's raw bytes. Callers must not mutate the
// returned slice.
func (f FileRef) Source() []byte { return f.source }

// Location is a 1-based line/column position within a specific file.
type Location struct {
	Line   int
	Column int
	FileID FileID
}

// Range is a half-open byte range [Start, End) within the file it was
// produced against. The file itself is identified by whichever Token
// or Diagnostic carries the range, not by the range itself.
type Range struct {
	Start int
	End   int
}

// Len reports the byte length of the range.
func (r Range) Len() int { return r.End - r.Start }

// Slice recovers the lexeme the range denotes from the given source
// buffer. The parser never re-reads the byte stream directly — it
// always goes through a token's range applied to its FileRef.
func (r Range) Slice(src []byte) []byte { return src[r.Start:r.End] }

// FileManager is the external collaborator that owns source buffers
// and hands out FileRefs by id. The core only ever borrows buffers
// read-only through this interface.
type FileManager interface {
	File(id FileID) (FileRef, bool)
}

// MemoryFileManager is a minimal, concurrency-safe FileManager backed
// by an in-memory map. It is sufficient to run the lexer/parser
// standalone and in tests; a host with its own file-loading story
// (disk watches, virtual filesystems, LSP overlays) supplies its own
// FileManager instead.
type MemoryFileManager struct {
	mu    sync.RWMutex
	files map[FileID]FileRef
}

// NewMemoryFileManager creates an empty in-memory file manager.
func NewMemoryFileManager() *MemoryFileManager {
	return &MemoryFileManager{files: make(map[FileID]FileRef)}
}

// Add registers a new source buffer and returns its freshly minted
// FileID. The id is derived from a random UUID so that ids stay
// globally unique within a run even across concurrently-loading
// goroutines, without requiring a shared counter.
func (m *MemoryFileManager) Add(name string, src []byte) FileID {
	id := fileIDFromUUID(uuid.New())

	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		if _, taken := m.files[id]; !taken && id != InvalidFileID {
			break
		}
		id = fileIDFromUUID(uuid.New())
	}
	m.files[id] = NewFileRef(id, name, src)
	return id
}

// File implements FileManager.
func (m *MemoryFileManager) File(id FileID) (FileRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[id]
	return f, ok
}

// fileIDFromUUID folds a 16-byte UUID down to a non-zero 32-bit id.
// Collisions are resolved by the caller retrying with a fresh UUID;
// a 32-bit fold from 128 bits of randomness makes that vanishingly
// rare in practice for any realistic number of files in a build.
func fileIDFromUUID(u uuid.UUID) FileID {
	var v uint32
	for i := 0; i < len(u); i += 4 {
		v ^= uint32(u[i])<<24 | uint32(u[i+1])<<16 | uint32(u[i+2])<<8 | uint32(u[i+3])
	}
	if v == uint32(InvalidFileID) {
		v++
	}
	return FileID(v)
}
