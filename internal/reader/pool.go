package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/kyleboon/chessdb/internal/pgn"
)

// ReaderState is one open PGN stream plus the Visitor driving it. A worker
// holds exactly one at a time (spec.md §5 "each worker holds at most one
// reader at a time").
type ReaderState struct {
	Path    string
	file    *os.File
	zstdDec *zstd.Decoder
	scanner *pgn.Scanner
	visitor *pgn.Visitor
	atEOF   bool
}

func openReader(path string, comp Compression) (*ReaderState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var src io.Reader = bufio.NewReaderSize(f, 64*1024)
	var dec *zstd.Decoder
	if comp == CompressionZstd {
		dec, err = zstd.NewReader(src)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("initializing zstd decompression for %s: %w", path, err)
		}
		src = dec
	}

	return &ReaderState{
		Path:    path,
		file:    f,
		zstdDec: dec,
		scanner: pgn.NewScanner(src),
		visitor: pgn.NewVisitor(),
	}, nil
}

func (r *ReaderState) close() {
	if r.zstdDec != nil {
		r.zstdDec.Close()
	}
	if r.file != nil {
		r.file.Close()
	}
}

// Pool is the shared mutable state spec.md §4.2's init phase allocates:
// {next_path_index, available_readers} behind one mutex. The lock is held
// only for pool/index bookkeeping (spec.md §5); opening files, decompressing,
// and parsing all happen outside it.
type Pool struct {
	mu              sync.Mutex
	paths           []string
	nextPathIndex   int
	availableReaders []*ReaderState
	compression     Compression
}

// NewPool builds a pool over the resolved path list.
func NewPool(paths []string, compression Compression) *Pool {
	return &Pool{paths: paths, compression: compression}
}

// withLock runs fn while holding the pool's mutex. Go's sync.Mutex has no
// notion of poisoning (unlike the panicking-RwLock semantics this
// specification's "poison safety" requirement is written against), but the
// recover here preserves the same operational guarantee spec.md §5 asks
// for: a panic during bookkeeping must not leave the lock held or crash the
// whole reader, and whatever partial state resulted from the panic is
// still a valid monotonic path index / reader pool (neither has a
// corruption invariant to protect by propagating the panic further).
func (p *Pool) withLock(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		_ = recover()
	}()
	fn()
}

// acquire pops an idle reader, or opens the next unclaimed path, or reports
// that no more work remains.
func (p *Pool) acquire() (state *ReaderState, path string, havePath bool, done bool) {
	p.withLock(func() {
		if n := len(p.availableReaders); n > 0 {
			state = p.availableReaders[n-1]
			p.availableReaders = p.availableReaders[:n-1]
			return
		}
		if p.nextPathIndex < len(p.paths) {
			path = p.paths[p.nextPathIndex]
			p.nextPathIndex++
			havePath = true
			return
		}
		done = true
	})
	return state, path, havePath, done
}

// release returns a non-EOF reader to the pool, or drops an exhausted one.
func (p *Pool) release(state *ReaderState) {
	if state.atEOF {
		state.close()
		return
	}
	p.withLock(func() {
		p.availableReaders = append(p.availableReaders, state)
	})
}
