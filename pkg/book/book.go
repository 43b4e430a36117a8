// Package book loads a Polyglot-format opening book and answers hash
// lookups by binary search (spec 4.10). The book file must be pre-sorted
// ascending by hash; consecutive records sharing a hash are coalesced into
// one entry.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/position"
)

// recordSize is the fixed Polyglot record length: uint64 hash, uint16 move,
// uint16 weight, uint32 learn.
const recordSize = 16

// maxMovesPerEntry caps the number of response moves coalesced under one
// hash; excess moves in the source file are discarded (spec 4.10).
const maxMovesPerEntry = 255

// Entry is one coalesced (hash -> response moves) record.
type Entry struct {
	Hash  uint64
	Moves []position.Move
}

// Book is an immutable, binary-searchable opening book. Safe for concurrent
// use without locking: read-only after Load (spec 5).
type Book struct {
	entries []Entry // sorted ascending by Hash
}

// Load reads a Polyglot BIN stream into a Book. Returns an error if the
// stream is truncated, malformed, or contains zero usable records -- an
// empty book is a startup fatal condition for the caller (spec 7), not
// something this package decides on its own.
func Load(r io.Reader) (*Book, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading opening book: %w", err)
	}
	if len(raw)%recordSize != 0 {
		return nil, fmt.Errorf("opening book: truncated record (size %v not a multiple of %v)", len(raw), recordSize)
	}

	var entries []Entry
	for i := 0; i+recordSize <= len(raw); i += recordSize {
		hash := binary.BigEndian.Uint64(raw[i : i+8])
		packed := binary.BigEndian.Uint16(raw[i+8 : i+10])

		m, ok := unpackMove(packed)
		if !ok {
			continue // unsupported promotion piece; skip this record
		}

		if n := len(entries); n > 0 && entries[n-1].Hash == hash {
			if len(entries[n-1].Moves) < maxMovesPerEntry {
				entries[n-1].Moves = append(entries[n-1].Moves, m)
			}
			continue
		}
		entries = append(entries, Entry{Hash: hash, Moves: []position.Move{m}})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("opening book: zero usable records")
	}
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Hash < entries[j].Hash }) {
		return nil, fmt.Errorf("opening book: records not sorted ascending by hash")
	}

	return &Book{entries: entries}, nil
}

// unpackMove decodes a Polyglot 16-bit move field: five 3-bit groups from
// the LSB up -- to-file, to-rank, from-file, from-rank, promotion-piece --
// with bottom-origin ranks mirrored into the engine's top-origin scheme
// (rank_engine = 7 - rank_file). Only promotion 0 (none) and 4 (queen) are
// accepted; any other promotion value is rejected (spec 4.10).
func unpackMove(packed uint16) (position.Move, bool) {
	toFile := coord.File(packed & 0x7)
	toRank := coord.Rank(7 - (packed>>3)&0x7)
	fromFile := coord.File((packed >> 6) & 0x7)
	fromRank := coord.Rank(7 - (packed>>9)&0x7)
	promo := (packed >> 12) & 0x7

	if promo != 0 && promo != 4 {
		return position.Move{}, false
	}
	return position.Move{From: coord.New(fromFile, fromRank), To: coord.New(toFile, toRank)}, true
}

// Find returns the coalesced entry for hash via binary search, and whether
// it was present.
func (b *Book) Find(hash uint64) (Entry, bool) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Hash >= hash })
	if i < len(b.entries) && b.entries[i].Hash == hash {
		return b.entries[i], true
	}
	return Entry{}, false
}

// Pick returns one move from hash's entry chosen uniformly at random via
// rnd, and whether an entry existed at all. The caller (pkg/engine) is
// responsible for verifying legality before trusting the result: a hash
// collision can make Pick return a move that isn't legal in the current
// position (spec 4.10, spec 7 "book move illegal at hash").
func (b *Book) Pick(hash uint64, rnd *rand.Rand) (position.Move, bool) {
	e, ok := b.Find(hash)
	if !ok || len(e.Moves) == 0 {
		return position.NullMove, false
	}
	return e.Moves[rnd.Intn(len(e.Moves))], true
}

// Len returns the number of distinct-hash entries in the book.
func (b *Book) Len() int {
	return len(b.entries)
}
