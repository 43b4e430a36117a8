// Package engine implements the facade described in spec 4.11 and 6:
// choose_move's book-then-search orchestration, game lifecycle, and the
// human/engine move surface external consumers (rendering, input handling,
// FEN I/O per spec 1) are built against.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/corvidlabs/negamax/pkg/book"
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/fen"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/pool"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/rules"
	"github.com/corvidlabs/negamax/pkg/search"
	"github.com/corvidlabs/negamax/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// bookPlyLimit is the last ply at which the opening book is consulted
// (spec 4.11: "If ply count <= 5, try the opening book").
const bookPlyLimit = 5

// Options configure an Engine at construction time.
type Options struct {
	// Workers sizes the Lazy-SMP worker pool. Zero means pool.NumWorkers().
	Workers int
	// QueueCapacity bounds the task queue. Zero means pool.DefaultQueueCapacity.
	QueueCapacity int
	// TableSize is the transposition table slot count. Zero means tt.DefaultSize.
	TableSize int
	// MaxDepth bounds iterative deepening. Unset means the teacher's
	// searchctl.Options.DepthLimit idiom of "no limit"; RequestEngineMove
	// falls back to a sane ceiling in that case.
	MaxDepth lang.Optional[uint]
	// SearchBudget bounds wall-clock time per move. Unset means unbounded
	// (MaxDepth-limited only); useful for the single-threaded deterministic
	// test mode described in spec 5.
	SearchBudget lang.Optional[time.Duration]
	// Seed seeds the book's move-choice PRNG. It is also passed to
	// position.NewZobristTable, which ignores it: the key table is fixed.
	Seed int64
}

// defaultMaxDepth is the iterative-deepening ceiling used when Options.MaxDepth
// is unset.
const defaultMaxDepth = 8

// DefaultOptions returns sensible defaults: auto-detected worker count, the
// default table size, depth ceiling 8, a 5 second budget, and the fixed
// Zobrist seed.
func DefaultOptions() Options {
	return Options{
		MaxDepth:     lang.Some(uint(defaultMaxDepth)),
		SearchBudget: lang.Some(5 * time.Second),
		Seed:         position.DefaultSeed,
	}
}

// Engine is the top-level facade: a mutex-guarded mutable game position plus
// the shared, concurrency-safe search infrastructure (transposition table,
// worker pool, Zobrist table, opening book) behind it.
type Engine struct {
	zt    *position.ZobristTable
	table *tt.Table
	wp    *pool.Pool
	bk    *book.Book
	opts  Options
	rnd   *rand.Rand

	mu  sync.Mutex
	pos *position.Position
}

// New constructs an Engine with the given opening book already loaded
// (init_engine, spec 6): a nil or empty book is the caller's fatal-abort
// condition to enforce (spec 7 "missing or empty book"), not this
// constructor's -- New itself never exits the process.
func New(bk *book.Book, opts Options) *Engine {
	e := &Engine{
		zt:    position.NewZobristTable(opts.Seed),
		table: tt.New(sizeOrDefault(opts.TableSize, tt.DefaultSize)),
		wp:    pool.New(workersOrDefault(opts.Workers), capacityOrDefault(opts.QueueCapacity)),
		bk:    bk,
		opts:  opts,
		rnd:   rand.New(rand.NewSource(opts.Seed)),
	}
	e.pos = position.NewInitial()
	e.zt.Rehash(e.pos)
	return e
}

func sizeOrDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func workersOrDefault(v int) int {
	if v > 0 {
		return v
	}
	return pool.NumWorkers()
}

func capacityOrDefault(v int) int {
	if v > 0 {
		return v
	}
	return pool.DefaultQueueCapacity
}

// Name returns the engine name and version, in the teacher's Name() idiom.
func (e *Engine) Name() string {
	return fmt.Sprintf("negamax %v", version)
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.wp.Close()
}

// NewGame clears the transposition table and resets to the standard
// starting position (spec 6 new_game()).
func (e *Engine) NewGame(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "New game")
	e.table.Clear()
	e.pos = position.NewInitial()
	e.zt.Rehash(e.pos)
}

// LoadPositionFromFEN replaces the current position, or reports a parse
// error leaving engine state untouched (spec 6/7).
func (e *Engine) LoadPositionFromFEN(s string) error {
	p, err := fen.Decode(s, e.zt)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = p
	return nil
}

// SerializePositionToFEN returns the current position in FEN (spec 6).
func (e *Engine) SerializePositionToFEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Position returns a copy of the current position, for read-only
// inspection by callers (e.g. a console driver rendering the board).
func (e *Engine) Position() *position.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Copy()
}

// SubmitHumanMove validates and applies a human move, or silently rejects
// it (spec 6/7: caller re-prompts).
func (e *Engine) SubmitHumanMove(from, to coord.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range rules.PseudoLegalMoves(e.pos, e.pos.Turn()) {
		if m.From != from || m.To != to {
			continue
		}
		if !rules.IsLegal(e.pos, m) {
			continue
		}
		rules.MakeMove(e.zt, e.pos, m, true)
		return nil
	}
	return fmt.Errorf("illegal move: %v%v", from, to)
}

// RequestEngineMove dispatches the async search described by choose_move
// (spec 4.11): protect the root hash, consult the opening book while still
// in book range, else launch iterative deepening onto the worker pool. It
// returns immediately; the result is read back via PollEngineMove.
func (e *Engine) RequestEngineMove(ctx context.Context) {
	e.mu.Lock()
	root := e.pos.Copy()
	e.mu.Unlock()

	hash := root.Hash()
	e.table.SetProtected(hash)

	if root.Ply() <= bookPlyLimit {
		if mv, ok := e.bk.Pick(hash, e.rnd); ok {
			if rules.IsLegal(root, mv) {
				logw.Infof(ctx, "Book hit at ply %v: %v", root.Ply(), mv)
				e.table.Put(tt.Entry{Hash: hash, Move: mv, Depth: tt.MaxDepth, Value: 0, Bound: tt.Exact})
				return
			}
			logw.Infof(ctx, "Book move %v illegal at hash %x (collision); falling through to search", mv, hash)
		}
	}

	limit, _ := e.opts.SearchBudget.V() // zero value means unbounded
	budget := search.Budget{Start: time.Now(), Limit: limit}

	maxDepth := defaultMaxDepth
	if v, ok := e.opts.MaxDepth.V(); ok {
		maxDepth = int(v)
	}
	go search.IterativeDeepening(ctx, e.wp, e.table, e.zt, root, maxDepth, budget)
}

// PollEngineMove returns the deepest completed move for the current root
// hash, or false if the table has nothing yet (still searching, per spec
// 6's poll_engine_move).
func (e *Engine) PollEngineMove() (position.Move, bool) {
	e.mu.Lock()
	hash := e.pos.Hash()
	e.mu.Unlock()

	entry := e.table.Get(hash)
	if entry.IsNull() {
		return position.NullMove, false
	}
	return entry.Move, true
}

// GameResult computes {None,WhiteWin,BlackWin,Draw} from checkmate,
// stalemate and insufficient material (spec 6 game_result(), supplemented
// per SPEC_FULL.md §3 -- repetition and the 50-move rule are non-goals and
// never produce Draw here).
func (e *Engine) GameResult() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	turn := e.pos.Turn()
	if len(rules.LegalMoves(e.pos, turn)) == 0 {
		if e.pos.IsChecked(turn) {
			return winnerOf(turn.Opponent())
		}
		return Draw
	}
	if isInsufficientMaterial(e.pos) {
		return Draw
	}
	return None
}

// isInsufficientMaterial reports whether neither side has enough material
// to force checkmate: king-only, or king plus a single minor piece, on
// both sides.
func isInsufficientMaterial(p *position.Position) bool {
	for _, c := range []piece.Color{piece.White, piece.Black} {
		nonKing := 0
		for _, sq := range p.PieceList(c).Squares() {
			k := p.Get(sq).Kind
			if k == piece.King {
				continue
			}
			if k != piece.Knight && k != piece.Bishop {
				return false
			}
			nonKing++
		}
		if nonKing > 1 {
			return false
		}
	}
	return true
}
