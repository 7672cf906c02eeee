package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"StockDatasets/internal/collector"
	"StockDatasets/internal/config"
	"StockDatasets/internal/model"
	"StockDatasets/internal/report"
	"StockDatasets/internal/scheduler"
	"StockDatasets/internal/visual"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockDatasets starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	log.Printf("[INFO] data source: %s, ticker %q", cfg.DataSource.Provider, cfg.DataSource.Ticker)

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func(ctx context.Context) error { return refresh(ctx, cfg, os.Stdout) }

	if os.Getenv("WATCH") != "true" {
		if err := job(ctx); err != nil {
			log.Fatalf("[FATAL] refresh: %v", err)
		}
		return
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule.RefreshCron, job)
	if err != nil {
		log.Fatalf("[FATAL] init scheduler: %v", err)
	}
	if err := sched.RunNow(ctx); err != nil {
		log.Printf("[ERROR] initial refresh: %v", err)
	}
	log.Println("[INFO] StockDatasets is running. Press Ctrl+C to stop.")
	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("[FATAL] scheduler: %v", err)
	}
	log.Println("[INFO] StockDatasets stopped")
}

// refresh fetches the configured datasets, prints a summary to out and
// writes the charts into the output directory.
func refresh(ctx context.Context, cfg *config.Config, out io.Writer) error {
	client := collector.NewHTTPClient(cfg.Proxy)

	switch cfg.DataSource.Provider {
	case config.ProviderMarketStack:
		a, err := collector.NewMarketStackAdapter(ctx, collector.MarketStackOptions{
			Ticker:          cfg.DataSource.Ticker,
			TrainingRange:   cfg.DataSource.Training,
			ValidationRange: cfg.DataSource.Validation,
			AccessKey:       cfg.MarketStack.AccessKey,
			PageLimit:       cfg.MarketStack.PageLimit,
			Client:          client,
			BaseURL:         cfg.MarketStack.BaseURL,
		})
		if err != nil {
			return err
		}
		sets := a.TrainingSets()
		records := make([]model.LabeledSeries, 0, len(sets))
		for _, symbol := range a.Symbols() {
			fmt.Fprint(out, report.FormatSeries(symbol+" training", sets[symbol], cfg.Output.HeadRows))
			records = append(records, model.LabeledSeries{Label: symbol, Series: sets[symbol]})
		}
		if len(records) == 0 {
			log.Println("[WARN] marketstack returned no records")
			return nil
		}
		return writePrices(cfg, records)

	default:
		var factory collector.Factory
		if cfg.DataSource.Provider == config.ProviderStatic {
			factory = collector.StaticFactory(cfg.DataSource.Ticker, 40)
		} else {
			factory = collector.YahooFactory(collector.YahooOptions{
				Ticker:          cfg.DataSource.Ticker,
				TrainingRange:   cfg.DataSource.Training,
				ValidationRange: cfg.DataSource.Validation,
				Client:          client,
				BaseURL:         cfg.Yahoo.BaseURL,
			})
		}

		a, err := factory(ctx, cfg.Frequency())
		if err != nil {
			return err
		}
		training, validation := a.TrainingSet(), a.ValidationSet()
		fmt.Fprint(out, report.FormatSeries("training", training, cfg.Output.HeadRows))
		fmt.Fprint(out, report.FormatSeries("validation", validation, cfg.Output.HeadRows))
		if err := writePrices(cfg, []model.LabeledSeries{
			{Label: cfg.DataSource.Ticker + " training", Series: training},
			{Label: cfg.DataSource.Ticker + " validation", Series: validation},
		}); err != nil {
			return err
		}

		col := collector.NewCollector(collector.Reuse(factory, cfg.Frequency(), a))
		periodic, err := col.CollectPeriodicReturns(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(out, report.FormatReturns(cfg.DataSource.Ticker, periodic))
		path := filepath.Join(cfg.Output.Dir, "returns.html")
		if err := visual.WriteFile(path, func(w io.Writer) error {
			return visual.RenderReturns(w, cfg.DataSource.Ticker, periodic)
		}); err != nil {
			return err
		}
		log.Printf("[INFO] wrote %s", path)
		return nil
	}
}

func writePrices(cfg *config.Config, records []model.LabeledSeries) error {
	path := filepath.Join(cfg.Output.Dir, "prices.html")
	if err := visual.WriteFile(path, func(w io.Writer) error {
		return visual.RenderPrices(w, records, model.ColumnPrice)
	}); err != nil {
		return err
	}
	log.Printf("[INFO] wrote %s", path)
	return nil
}
