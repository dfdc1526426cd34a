package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"StockScreener/internal/model"
	"StockScreener/internal/notifier"
	"StockScreener/internal/recorder"
	"StockScreener/internal/scanner"
	"StockScreener/internal/universe"

	"github.com/robfig/cron/v3"
)

// ScanParams holds the configured screening criteria for scheduled runs.
type ScanParams struct {
	Strategies []model.StrategyID
	MinPrice   float64
	MaxPrice   float64
	Category   string
}

// Scheduler manages the cron-driven scan and universe refresh tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Universe *universe.Cache
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Params   ScanParams
	Ctx      context.Context

	scanMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, uni *universe.Cache, tn *notifier.TelegramNotifier, rec recorder.Recorder, params ScanParams) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Universe: uni,
		Notifier: tn,
		Recorder: rec,
		Params:   params,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scan and universe refresh tasks.
func (s *Scheduler) RegisterAll(scanCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
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

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	if !s.scanMu.TryLock() {
		log.Println("[WARN] scan already in progress, skipping trigger")
		return
	}
	defer s.scanMu.Unlock()

	log.Println("[INFO] running scan task")
	symbols, err := s.Universe.Symbols(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] load universe: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan aborted, universe unavailable: %v", err))
		return
	}
	symbols = universe.FilterByCategory(symbols, s.Params.Category)

	req := model.ScanRequest{
		Symbols:    symbols,
		Strategies: s.Params.Strategies,
		MinPrice:   s.Params.MinPrice,
		MaxPrice:   s.Params.MaxPrice,
	}

	result, err := s.Scanner.Scan(s.Ctx, req, logProgress(len(symbols)))
	if err != nil {
		log.Printf("[ERROR] scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}

	s.trySend(notifier.FormatScanReport(req, result))
	for i := range result.Matches {
		if i >= 5 {
			break // summary already lists the rest
		}
		s.trySend(notifier.FormatMatchDetail(&result.Matches[i]))
	}

	if err := s.Recorder.RecordScan(&recorder.ScanRun{Request: req, Result: result}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] refreshing symbol universe")
	if err := s.Universe.Refresh(s.Ctx); err != nil {
		log.Printf("[ERROR] universe refresh: %v", err)
		return
	}
	log.Printf("[INFO] universe refreshed: %d symbols", s.Universe.Size())
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.TrimSpace(command) {
	case "/scan":
		go s.scanTask()
		return "Scan started, report will follow."
	case "/universe":
		return notifier.FormatUniverseStatus(s.Universe.Size(), s.Universe.ExpiresAt())
	default:
		return "Available commands:\n• /scan\n• /universe"
	}
}

// logProgress reports scan progress to the log in ~10% steps.
func logProgress(total int) scanner.ProgressFunc {
	step := total / 10
	if step == 0 {
		step = 1
	}
	return func(processed, total int) {
		if processed%step == 0 || processed == total {
			log.Printf("[INFO] scan progress: %d/%d", processed, total)
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
