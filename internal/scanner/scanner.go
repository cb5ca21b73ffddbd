// Package scanner runs the top-level scan loop: advance period rotation,
// pull fresh books, run every detector over every tracked market, and
// feed detected opportunities through the execution simulator.
package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
	"github.com/alejandrodnm/updown/internal/rotation"
	"github.com/alejandrodnm/updown/internal/sim"
	"github.com/alejandrodnm/updown/internal/strategy"
)

// Config controls the scan loop.
type Config struct {
	ScanInterval time.Duration
	Strategy     strategy.Params
	Once         bool // run a single cycle and exit
}

// DefaultConfig returns production-sane settings.
func DefaultConfig() Config {
	return Config{
		ScanInterval: 3 * time.Second,
		Strategy:     strategy.DefaultParams(),
	}
}

// Scanner is the orchestrator. One cycle runs to completion — all
// markets, all strategies, all simulations — before the next tick;
// nothing in here is concurrent with anything else in here.
type Scanner struct {
	cfg      Config
	rotation *rotation.Controller
	sim      *sim.Simulator
	notifier ports.Notifier
	storage  ports.Storage
	session  *Session
	now      func() time.Time
}

// New creates a Scanner with injected collaborators. storage may be nil.
func New(cfg Config, rot *rotation.Controller, simulator *sim.Simulator, notifier ports.Notifier, storage ports.Storage) *Scanner {
	return &Scanner{
		cfg:      cfg,
		rotation: rot,
		sim:      simulator,
		notifier: notifier,
		storage:  storage,
		session:  NewSession(time.Now()),
		now:      time.Now,
	}
}

// Session exposes the running session state for reports.
func (s *Scanner) Session() *Session { return s.session }

// Run executes scan cycles until the context is cancelled. Cycle errors
// are logged, never fatal — the loop's job is to keep scanning across
// transient failures indefinitely.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"once", s.cfg.Once,
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("scan cycle failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}

	if s.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// runCycle executes one cycle and hands the results to the notifier and
// storage collaborators.
func (s *Scanner) runCycle(ctx context.Context) error {
	start := s.now()

	report, err := s.Cycle(ctx)
	if err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, report); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if s.storage != nil {
		if err := s.storage.SaveCycle(ctx, report); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	slog.Debug("scan cycle complete",
		"opportunities", len(report.Opportunities),
		"trades", len(report.Trades),
		"time_left", report.TimeLeft,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// Cycle runs exactly one scan pass: reconcile rotation, detect, record,
// simulate. Returns the cycle's records for presentation/persistence.
func (s *Scanner) Cycle(ctx context.Context) (ports.CycleReport, error) {
	now := s.now()

	rotated, err := s.rotation.Reconcile(ctx, now)
	if err != nil {
		return ports.CycleReport{}, err
	}
	if rotated {
		s.session.Stats.PeriodTransitions = s.rotation.Transitions()
	}

	timeLeft := s.rotation.TimeRemaining(now)
	opps := s.detect(now, timeLeft)

	report := ports.CycleReport{
		Opportunities: opps,
		TimeLeft:      timeLeft,
		Rotated:       rotated,
		PeriodStart:   s.rotation.PeriodStart(),
	}

	for _, opp := range opps {
		s.session.recordOpportunity(opp)
		slog.Info(opp.Label(), "strategy", opp.Kind)

		trade := s.sim.Execute(opp, s.now())
		s.session.recordTrade(trade)
		report.Trades = append(report.Trades, trade)

		if trade.Filled() {
			slog.Info("simulated fill",
				"strategy", trade.Kind,
				"market", trade.Symbol,
				"net_pnl", trade.NetPnL,
			)
		} else {
			slog.Debug("simulated rejection",
				"strategy", trade.Kind,
				"market", trade.Symbol,
				"reason", trade.Reason,
			)
		}
	}

	report.Stats = *s.session.Stats
	return report, nil
}

// detect runs all three strategies over every tracked market. The snipe
// only applies to markets with period semantics — a general binary
// market has no terminal window.
func (s *Scanner) detect(now time.Time, timeLeft float64) []domain.Opportunity {
	var opps []domain.Opportunity

	for _, t := range s.rotation.Markets() {
		left := 0.0
		if t.HasPeriod {
			left = timeLeft
		}

		if arb, ok := strategy.DetectArbitrage(t.Market, t.Books.Yes, t.Books.No, left, now, s.cfg.Strategy); ok {
			opps = append(opps, arb)
		}

		if t.HasPeriod {
			if snipe, ok := strategy.DetectSnipe(t.Market, t.Books.Yes, t.Books.No, left, now, s.cfg.Strategy); ok {
				opps = append(opps, snipe)
			}
		}

		opps = append(opps, strategy.DetectMispriced(t.Market, t.Books.Yes, t.Books.No, left, now, s.cfg.Strategy)...)
	}

	return opps
}
