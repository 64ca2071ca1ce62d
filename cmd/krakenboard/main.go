package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/krakenboard/internal/api"
	"github.com/mtlprog/krakenboard/internal/balance"
	"github.com/mtlprog/krakenboard/internal/config"
	"github.com/mtlprog/krakenboard/internal/credentials"
	"github.com/mtlprog/krakenboard/internal/domain"
	"github.com/mtlprog/krakenboard/internal/export"
	"github.com/mtlprog/krakenboard/internal/kraken"
	"github.com/mtlprog/krakenboard/internal/order"
	"github.com/mtlprog/krakenboard/internal/pair"
	"github.com/mtlprog/krakenboard/internal/portfolio"
	"github.com/mtlprog/krakenboard/internal/price"
	"github.com/mtlprog/krakenboard/internal/render"
	"github.com/mtlprog/krakenboard/internal/valuation"
	"github.com/mtlprog/krakenboard/internal/worker"
)

const terminalWidth = 100

// app holds the services shared by every command.
type app struct {
	cfg       config.Config
	pairs     *pair.Service
	portfolio *portfolio.Service
	orders    *order.Submitter
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	cliApp := &cli.App{
		Name:   "krakenboard",
		Usage:  "Kraken portfolio dashboard and market order desk",
		Before: a.setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP dashboard",
				Action: a.serve,
			},
			{
				Name:  "portfolio",
				Usage: "print the current valuation",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
				},
				Action: a.printPortfolio,
			},
			{
				Name:  "order",
				Usage: "submit one market order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "asset", Usage: "exchange asset code, e.g. XXBT", Required: true},
					&cli.StringFlag{Name: "side", Usage: "buy or sell", Required: true},
					&cli.StringFlag{Name: "volume", Usage: "order volume in base asset units", Required: true},
					&cli.BoolFlag{Name: "yes", Usage: "confirm a live market order"},
					&cli.BoolFlag{Name: "validate", Usage: "let the exchange validate the order without placing it"},
				},
				Action: a.placeOrder,
			},
			{
				Name:  "export",
				Usage: "write the valuation to a workbook or a Google Sheet",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "xlsx", Usage: "path of the .xlsx file to write"},
					&cli.StringFlag{Name: "sheet-id", Usage: "Google spreadsheet ID"},
					&cli.StringFlag{Name: "sheet-credentials", Usage: "service account JSON file"},
				},
				Action: a.export,
			},
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("krakenboard: %v", err)
	}
}

func (a *app) setup(_ *cli.Context) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	a.cfg = config.Load()
	slog.SetDefault(a.cfg.NewLogger(os.Stderr))

	creds, err := credentials.Load(a.cfg.KrakenKeyFile)
	if err != nil {
		return fmt.Errorf("loading credentials from %s: %w", a.cfg.KrakenKeyFile, err)
	}

	client := kraken.NewClient(a.cfg.KrakenURL, a.cfg.KrakenTimeout, creds.Key, creds.Secret)
	quote := domain.AssetCode(a.cfg.QuoteAsset)

	a.pairs = pair.NewService(client, quote)
	a.portfolio = portfolio.NewService(
		balance.NewService(client),
		a.pairs,
		price.NewService(client),
		valuation.NewEngine(quote),
	)
	a.orders = order.NewSubmitter(client)
	return nil
}

func (a *app) serve(c *cli.Context) error {
	if a.cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, JSON order endpoint is unprotected")
	}

	if a.cfg.ExportInterval > 0 && a.cfg.ExportSheetID != "" {
		w, err := a.sheetsWriter(c.Context, a.cfg.ExportSheetID, a.cfg.ExportSheetCredentials)
		if err != nil {
			return err
		}
		exportWorker := worker.NewExportWorker(export.NewService(a.portfolio, w), a.cfg.ExportInterval)
		go exportWorker.Run(c.Context)
	}

	handler := api.NewHandler(a.portfolio, a.pairs, a.orders)
	srv := api.NewServer(a.cfg.Addr(), handler, a.cfg.AdminAPIKey)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-c.Context.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}

func (a *app) printPortfolio(c *cli.Context) error {
	p, _, err := a.portfolio.GetPortfolio(c.Context)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	out, err := render.Terminal(render.Markdown(p), terminalWidth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, out)
	return err
}

func (a *app) placeOrder(c *cli.Context) error {
	validate := c.Bool("validate")
	if !c.Bool("yes") && !validate {
		return cli.Exit("refusing to place a live market order without --yes", 2)
	}

	if !validate {
		fmt.Fprintln(c.App.Writer, render.CautionNote())
	}

	pairs, err := a.pairs.FetchPairMap(c.Context)
	if err != nil {
		return err
	}

	ack, err := a.orders.Submit(c.Context, pairs, order.Request{
		Asset:    domain.AssetCode(c.String("asset")),
		Side:     c.String("side"),
		Volume:   c.String("volume"),
		Validate: validate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, ack.Summary())
	if ack.Description != "" {
		fmt.Fprintln(c.App.Writer, ack.Description)
	}
	for _, id := range ack.TxIDs {
		fmt.Fprintln(c.App.Writer, "txid:", id)
	}
	return nil
}

func (a *app) export(c *cli.Context) error {
	path := c.String("xlsx")
	sheetID := c.String("sheet-id")
	if path == "" && sheetID == "" {
		return cli.Exit("export needs --xlsx or --sheet-id", 2)
	}

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = export.NewService(a.portfolio, export.NewXLSXWriter(f)).Export(c.Context)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "wrote", path)
	}

	if sheetID != "" {
		credsPath := c.String("sheet-credentials")
		if credsPath == "" {
			return cli.Exit("--sheet-id needs --sheet-credentials", 2)
		}
		w, err := a.sheetsWriter(c.Context, sheetID, credsPath)
		if err != nil {
			return err
		}
		if err := export.NewService(a.portfolio, w).Export(c.Context); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "updated spreadsheet", sheetID)
	}
	return nil
}

func (a *app) sheetsWriter(ctx context.Context, sheetID, credsPath string) (*export.SheetsWriter, error) {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("reading sheet credentials: %w", err)
	}
	return export.NewSheetsWriter(ctx, sheetID, string(data))
}
