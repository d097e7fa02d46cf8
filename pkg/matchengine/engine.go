package matchengine

import (
	"errors"

	"go.uber.org/zap"
)

// Config selects the engine's matching semantics. Zero fields fall back
// to the legacy-compatible defaults.
type Config struct {
	Arithmetic Arithmetic `yaml:"arithmetic"`
	Priority   Priority   `yaml:"priority"`
}

func DefaultConfig() Config {
	return Config{Arithmetic: ArithmeticLegacy, Priority: PriorityTime}
}

// Stats counts per-run record outcomes.
type Stats struct {
	Processed    int
	Malformed    int
	ScaleDropped int
	Duplicates   int
}

// Engine drives decode → dispatch over a command sequence. It owns the
// book and the trade output. Commands are applied strictly one at a time;
// a single goroutine must feed it.
type Engine struct {
	cfg    Config
	book   *Book
	trades []Trade
	stats  Stats

	log       *zap.Logger
	callbacks []func([]Trade)
}

type Option func(*Engine)

// WithLogger attaches a logger for per-record warnings. Default is a nop
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.Arithmetic == "" {
		cfg.Arithmetic = ArithmeticLegacy
	}
	if cfg.Priority == "" {
		cfg.Priority = PriorityTime
	}
	e := &Engine{
		cfg:  cfg,
		book: NewBook(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterTradeCallback subscribes to the trades produced by each applied
// command. The callback runs synchronously after the command's effects.
func (e *Engine) RegisterTradeCallback(fn func([]Trade)) {
	e.callbacks = append(e.callbacks, fn)
}

// Apply decodes and executes one record. A record that fails decoding, or
// an INSERT reusing a resting id, is skipped with no state change; the
// returned error says why it was skipped. No error aborts the run.
func (e *Engine) Apply(record string) error {
	cmd, err := ParseCommand(record)
	if err != nil {
		if errors.Is(err, ErrPriceScale) {
			// business rule: dropped silently, only the counter moves
			e.stats.ScaleDropped++
			return err
		}
		e.stats.Malformed++
		e.log.Warn("skipping malformed record",
			zap.String("record", record), zap.Error(err))
		return err
	}

	before := len(e.trades)
	switch cmd.Kind {
	case CmdInsert:
		if _, ok := e.book.Find(cmd.ID); ok {
			e.stats.Duplicates++
			e.log.Warn("rejecting duplicate order id",
				zap.Int64("id", cmd.ID), zap.String("record", record))
			return &DecodeError{Record: record, Field: "id", Err: ErrDuplicateOrder}
		}
		e.insert(&Order{
			ID:     cmd.ID,
			Symbol: cmd.Symbol,
			Side:   cmd.Side,
			Price:  cmd.Price,
			Volume: cmd.Volume,
		})
	case CmdAmend:
		e.amend(cmd.ID, cmd.Price, cmd.Volume)
	case CmdPull:
		e.pull(cmd.ID)
	}
	e.stats.Processed++

	if batch := e.trades[before:]; len(batch) > 0 {
		for _, cb := range e.callbacks {
			cb(batch)
		}
	}
	return nil
}

// Process runs a whole command sequence and returns the combined output:
// every trade row in match-discovery order, then the leftover liquidity
// report. Process drains the book, so a fresh Engine is needed per run.
func (e *Engine) Process(records []string) []string {
	for _, r := range records {
		_ = e.Apply(r)
	}

	out := make([]string, 0, len(e.trades))
	for _, t := range e.trades {
		out = append(out, t.Row())
	}
	return append(out, e.drainLeftovers()...)
}

func (e *Engine) emit(t Trade) {
	e.trades = append(e.trades, t)
}

// Trades returns every execution so far, in match-discovery order.
func (e *Engine) Trades() []Trade { return e.trades }

func (e *Engine) Stats() Stats { return e.stats }
