// Command negamaxd is a minimal console driver around pkg/engine: a
// read-eval-print loop over stdin/stdout exercising the full facade
// (new game, FEN load/print, human moves, engine search, game result)
// without any UCI option surface or on-screen rendering -- a dev/test
// harness, not a product UI, grounded on the teacher's
// pkg/engine/console read-loop shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/corvidlabs/negamax/pkg/book"
	"github.com/corvidlabs/negamax/pkg/config"
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	configPath = flag.String("config", config.FileName, "Path to the TOML configuration file")
	bookPath   = flag.String("book", "", "Path to the Polyglot opening book (overrides config)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: negamaxd [options]

negamaxd is a console harness around the negamax chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logw.Exitf(ctx, "Invalid configuration %v: %v", *configPath, err)
	}

	path := cfg.BookPath
	if *bookPath != "" {
		path = *bookPath
	}

	f, err := os.Open(path)
	if err != nil {
		logw.Exitf(ctx, "Opening book is required at startup: %v", err)
	}
	bk, err := book.Load(f)
	_ = f.Close()
	if err != nil {
		logw.Exitf(ctx, "Opening book %v is invalid or empty: %v", path, err)
	}
	logw.Infof(ctx, "Loaded opening book %v (%v positions)", path, bk.Len())

	opts := engine.DefaultOptions()
	if cfg.TableSize > 0 {
		opts.TableSize = cfg.TableSize
	}
	if cfg.MaxDepth > 0 {
		opts.MaxDepth = lang.Some(uint(cfg.MaxDepth))
	}
	if cfg.SearchBudgetMillis > 0 {
		opts.SearchBudget = lang.Some(time.Duration(cfg.SearchBudgetMillis) * time.Millisecond)
	}
	opts.Workers = cfg.Workers
	if n, ok := nproc(); ok {
		opts.Workers = n
	}

	searchBudget, _ := opts.SearchBudget.V()

	e := engine.New(bk, opts)
	defer e.Close()

	logw.Infof(ctx, "%v ready", e.Name())

	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 16)
	go engine.WriteStdoutLines(ctx, out)
	defer close(out)

	out <- fmt.Sprintf("%v ready. commands: new, fen <fen>, <move>, go, result, print, quit", e.Name())
	printBoard(e, out)

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "new":
			e.NewGame(ctx)
			printBoard(e, out)

		case "fen":
			if err := e.LoadPositionFromFEN(strings.Join(args, " ")); err != nil {
				out <- fmt.Sprintf("invalid position: %v", err)
				continue
			}
			printBoard(e, out)

		case "print", "p":
			printBoard(e, out)

		case "go":
			e.RequestEngineMove(ctx)
			deadline := time.Now().Add(searchBudget + time.Second)
			for {
				if mv, ok := e.PollEngineMove(); ok {
					out <- fmt.Sprintf("bestmove %v", mv)
					break
				}
				if time.Now().After(deadline) {
					out <- "bestmove 0000"
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			printBoard(e, out)

		case "result":
			out <- e.GameResult().String()

		case "quit", "exit", "q":
			return

		case "":
			// ignore

		default:
			// Assume a pure-coordinate move, e.g. "e2e4".
			if err := submitMove(e, parts[0]); err != nil {
				out <- fmt.Sprintf("invalid move %q: %v", parts[0], err)
				continue
			}
			printBoard(e, out)
		}
	}
	logw.Infof(ctx, "Input stream closed")
}

func submitMove(e *engine.Engine, s string) error {
	if len(s) < 4 {
		return fmt.Errorf("too short")
	}
	from, err := coord.ParseSquare(s[0:2])
	if err != nil {
		return err
	}
	to, err := coord.ParseSquare(s[2:4])
	if err != nil {
		return err
	}
	return e.SubmitHumanMove(from, to)
}

func printBoard(e *engine.Engine, out chan<- string) {
	p := e.Position()
	out <- ""
	out <- p.String()
	out <- fmt.Sprintf("fen: %v", e.SerializePositionToFEN())
	out <- ""
}

// nproc reads the CHESS_NPROC override (spec 6), if set and valid.
func nproc() (int, bool) {
	s := os.Getenv("CHESS_NPROC")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
