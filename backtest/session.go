// Package backtest drives a strategy over a historical bar series: one
// strictly sequential pass in chronological order, with order execution,
// cash/commission accounting, and return measurement along the way.
package backtest

import (
	"fmt"
	"io"

	"github.com/quantmill/backsim/analytics"
	"github.com/quantmill/backsim/journal"
	"github.com/quantmill/backsim/market"
	"github.com/quantmill/backsim/sim"
	"github.com/quantmill/backsim/strategies"
)

// Config holds the portfolio and measurement parameters of a run.
type Config struct {
	InitialCash    float64 // starting cash, default 10000
	CommissionRate float64 // commission as a fraction of notional, default 0.001
	PeriodsPerYear int     // annualization base for returns, default 252
}

func (c Config) withDefaults() Config {
	if c.InitialCash == 0 {
		c.InitialCash = 10000.0
	}
	if c.CommissionRate == 0 {
		c.CommissionRate = 0.001
	}
	if c.PeriodsPerYear == 0 {
		c.PeriodsPerYear = 252
	}
	return c
}

// Session is one independent backtest run: it owns the portfolio, indicator,
// and signal state, so multiple sessions can coexist (e.g. parameter sweeps)
// as long as they do not share a Strategy value. Run rebuilds portfolio
// state from the configured initial cash, so calling Run again replays the
// identical simulation.
type Session struct {
	series *market.Series
	strat  strategies.Strategy
	cfg    Config
	logw   io.Writer
	jnl    journal.Journal
}

// Option customizes a Session.
type Option func(*Session)

// WithLog directs the per-decision/fill/close log lines to w.
func WithLog(w io.Writer) Option {
	return func(s *Session) { s.logw = w }
}

// WithJournal records closed trades and per-bar equity snapshots to j. The
// caller keeps ownership of j and closes it after the run.
func WithJournal(j journal.Journal) Option {
	return func(s *Session) { s.jnl = j }
}

// New creates a session over the validated series.
func New(series *market.Series, strat strategies.Strategy, cfg Config, opts ...Option) *Session {
	s := &Session{
		series: series,
		strat:  strat,
		cfg:    cfg.withDefaults(),
		logw:   io.Discard,
		jnl:    journal.Discard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a run.
type Result struct {
	InitialCash float64
	FinalValue  float64
	Returns     analytics.Returns
	TimeReturns []analytics.Point
	Trades      []sim.Trade
	Wins        int
	Losses      int
}

// Run executes the simulation: for each bar, the strategy updates its
// indicator and signal state and may submit one order, the broker resolves
// it at the bar's open, and the portfolio value is sampled at the bar's
// close. Aggregate returns are computed after the last bar.
func (s *Session) Run() (*Result, error) {
	if s.series.Len() == 0 {
		return nil, fmt.Errorf("backtest: empty bar series")
	}

	broker := sim.NewBroker(s.cfg.InitialCash, s.cfg.CommissionRate)
	s.strat.Reset()

	var timeReturns analytics.TimeReturn

	for i := 0; i < s.series.Len(); i++ {
		bar := s.series.Bar(i)

		if req := s.strat.OnBar(broker, bar); req != nil {
			s.logCreated(broker, req, bar)

			order := sim.Order{Side: req.Side, Size: req.Size, Status: sim.Submitted}
			_, events := broker.Execute(order, bar.Time, bar.Open)
			if err := s.emit(events); err != nil {
				return nil, err
			}
		}

		value := broker.Value(bar.Close)
		timeReturns.Sample(bar.Time, value)

		if err := s.jnl.RecordEquity(journal.EquitySnapshot{
			Time:     bar.Time,
			Cash:     broker.Cash(),
			Position: broker.Position().Size,
			Value:    value,
		}); err != nil {
			return nil, fmt.Errorf("backtest: record equity: %w", err)
		}
	}

	trades := broker.Ledger()
	wins, losses := 0, 0
	for _, t := range trades {
		if t.NetPnL > 0 {
			wins++
		} else if t.NetPnL < 0 {
			losses++
		}
	}

	return &Result{
		InitialCash: s.cfg.InitialCash,
		FinalValue:  broker.Value(s.series.Last().Close),
		Returns:     analytics.Annualize(timeReturns.Points(), s.cfg.PeriodsPerYear),
		TimeReturns: timeReturns.Points(),
		Trades:      trades,
		Wins:        wins,
		Losses:      losses,
	}, nil
}

const dateLayout = "2006-01-02"

func (s *Session) logCreated(broker *sim.Broker, req *strategies.OrderRequest, bar market.Bar) {
	fmt.Fprintf(s.logw, "%s, %s CREATED --- Size: %d, Cash: %.2f, Open: %.2f, Close: %.2f\n",
		bar.Time.Format(dateLayout), req.Side, req.Size, broker.Cash(), bar.Open, bar.Close)
}

// emit renders broker events as log lines and journals closed trades.
func (s *Session) emit(events []sim.Event) error {
	for _, ev := range events {
		date := ev.Time.Format(dateLayout)

		switch ev.Kind {
		case sim.EventFill:
			fmt.Fprintf(s.logw, "%s, %s EXECUTED --- Price: %.2f, Cost: %.2f, Commission: %.2f\n",
				date, ev.Side, ev.Price, ev.Value, ev.Commission)

		case sim.EventTradeClosed:
			t := ev.Trade
			fmt.Fprintf(s.logw, "%s, OPERATION RESULT --- Gross: %.2f, Net: %.2f\n",
				date, t.GrossPnL, t.NetPnL)
			if err := s.jnl.RecordTrade(journal.TradeRecord{
				TradeID:    t.ID,
				Size:       t.Size,
				EntryTime:  t.EntryTime,
				EntryPrice: t.EntryPrice,
				EntryComm:  t.EntryComm,
				ExitTime:   t.ExitTime,
				ExitPrice:  t.ExitPrice,
				ExitComm:   t.ExitComm,
				GrossPnL:   t.GrossPnL,
				NetPnL:     t.NetPnL,
			}); err != nil {
				return fmt.Errorf("backtest: record trade: %w", err)
			}

		case sim.EventOrderFailed:
			fmt.Fprintf(s.logw, "%s, Order Failed\n", date)
		}
	}
	return nil
}
