package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"PortfolioLens/internal/cache"
	"PortfolioLens/internal/collector"
	"PortfolioLens/internal/leverage"
	"PortfolioLens/internal/notifier"
	"PortfolioLens/internal/recorder"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron           *cron.Cron
	Collector      *collector.Collector
	Cache          *cache.Cache
	Notifier       *notifier.TelegramNotifier
	Recorder       recorder.Recorder
	LeverageTables leverage.Tables
	Ctx            context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, c *cache.Cache, tn *notifier.TelegramNotifier, rec recorder.Recorder, tables leverage.Tables) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		Cache:          c,
		Notifier:       tn,
		Recorder:       rec,
		LeverageTables: tables,
		Ctx:            ctx,
	}
}

// RegisterAll registers the refresh, reload, and rollover tasks.
func (s *Scheduler) RegisterAll(refreshCron, reloadCron, rolloverCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reloadCron, s.reloadTask); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	if _, err := s.Cron.AddFunc(rolloverCron, s.rolloverTask); err != nil {
		return fmt.Errorf("register rollover task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes a refresh cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh cycle")
	result, err := s.Collector.Refresh()
	if err != nil {
		log.Printf("[ERROR] refresh: %v", err)
		s.trySend(fmt.Sprintf("❌ Refresh failed: %v", err))
		return
	}

	report := notifier.FormatPortfolioReport(&result.Account)
	if len(result.TodayExecutions) > 0 {
		report += "\n" + notifier.FormatTradeLog(result.TodayExecutions)
	}
	s.trySend(report)

	sum := result.Account.Summary
	if err := s.Recorder.RecordRefresh(&recorder.RefreshRecord{
		CycleID:       uuid.NewString(),
		NetAssets:     sum.NetAssets,
		TotalAssets:   sum.TotalAssets,
		TotalPnL:      sum.TotalUnrealizedPnL,
		AdjustedCash:  sum.AdjustedCash,
		BuyingPower:   sum.BuyingPower,
		Leverage:      sum.Leverage,
		PositionCount: len(result.Account.Positions),
		TradedToday:   len(result.TodayExecutions),
		PivotDays:     len(result.Pivot),
		Targets:       sum.LeverageTargets,
	}); err != nil {
		log.Printf("[ERROR] record refresh: %v", err)
	}
}

// reloadTask drops the cache and pulls a fresh trade log ahead of the
// session, so the first refresh of the day does not pay for it.
func (s *Scheduler) reloadTask() {
	log.Println("[INFO] running trade-log reload")
	s.Cache.Invalidate()
	entries, err := s.Collector.LoadTradeLog()
	if err != nil {
		log.Printf("[ERROR] reload trade log: %v", err)
		s.trySend(fmt.Sprintf("❌ Trade log reload failed: %v", err))
		return
	}

	codes := make(map[string]bool)
	latest := ""
	for _, e := range entries {
		codes[e.Code] = true
		if e.Date > latest {
			latest = e.Date
		}
	}
	if err := s.Recorder.RecordInitialLoad(&recorder.InitialLoadRecord{
		CycleID:    uuid.NewString(),
		Entries:    len(entries),
		Codes:      len(codes),
		LatestDate: latest,
	}); err != nil {
		log.Printf("[ERROR] record initial load: %v", err)
	}
	log.Printf("[INFO] trade log reloaded: %d entries, %d codes", len(entries), len(codes))
}

func (s *Scheduler) rolloverTask() {
	s.Cache.Invalidate()
	log.Println("[INFO] daily rollover: cache invalidated")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/status":
		result, err := s.Collector.Refresh()
		if err != nil {
			return fmt.Sprintf("❌ Refresh failed: %v", err)
		}
		return notifier.FormatPortfolioReport(&result.Account)
	case "/log":
		entries, err := s.Collector.LoadTradeLog()
		if err != nil {
			return fmt.Sprintf("❌ Trade log unavailable: %v", err)
		}
		return notifier.FormatTradeLog(entries)
	case "/pivot":
		result, err := s.Collector.Refresh()
		if err != nil {
			return fmt.Sprintf("❌ Refresh failed: %v", err)
		}
		return notifier.FormatPivotDigest(result.Pivot)
	case "/leverage":
		sel := leverage.DefaultSelection()
		if len(fields) == 5 {
			sel = leverage.Selection{
				MaxDrawdown: fields[1],
				ShockCare:   fields[2],
				StockType:   fields[3],
				Drawdown:    fields[4],
			}
		}
		return notifier.FormatLeverageReport(leverage.Compute(s.LeverageTables, sel))
	case "/refresh":
		go s.refreshTask()
		return "🔄 Refresh started."
	default:
		return "Commands:\n• /status - portfolio report\n• /log - trade history\n• /pivot - price change by trade date\n• /leverage [dd care type drawdown]\n• /refresh - run a cycle now"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
