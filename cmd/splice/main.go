package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/bnema/splice/config"
	HTTPAdapter "github.com/bnema/splice/internal/adapter/http"
	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("splice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML configuration file (default $SPLICE_CONFIG)")
	verbose := fs.Bool("v", false, "Verbose logging")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() { printUsage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		_, _ = fmt.Fprintln(stdout, "splice "+version)
		return 0
	}
	if fs.NArg() == 0 {
		printUsage(fs, stderr)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}
	if *verbose {
		cfg.Verbose = true
	}
	logger.SetVerbose(cfg.Verbose)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "merge":
		return runMerge(cfg, rest, stdout, stderr)
	case "serve":
		return runServe(cfg, rest, stderr)
	case "check":
		return runCheck(cfg, stdout, stderr)
	case "history":
		return runHistory(cfg, rest, stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "splice: unknown command %q\n", cmd)
		printUsage(fs, stderr)
		return 2
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprint(w, `Usage: splice [flags] <command> [args]

Commands:
  merge -o <output> [-export <target>] <input> <input> [input...]
                 normalize the inputs and join them in order
  serve          run the HTTP API
  check          report ffmpeg/ffprobe availability
  history [-n N] list recent runs

Flags:
`)
	fs.PrintDefaults()
}

func runMerge(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "Destination file (required)")
	exportTo := fs.String("export", "", "Upload the result to an s3://, gs://, sftp:// or file:// target")
	keep := fs.Bool("keep", cfg.KeepIntermediates, "Keep the per-run workspace")
	strict := fs.Bool("strict", cfg.ProbePolicy == domain.ProbePolicyStrict, "Fail when an input cannot be probed")
	quiet := fs.Bool("q", false, "Do not draw a progress bar")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg.KeepIntermediates = *keep
	if *strict {
		cfg.ProbePolicy = domain.ProbePolicyStrict
	}
	// stdout only carries the output location
	logger.SetOutput(stderr)

	a, err := newApp(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := a.merges.Submit(ctx, service.MergeRequest{
		Inputs:      fs.Args(),
		Destination: *output,
		Export:      *exportTo,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}

	final := waitWithProgress(ctx, a, run.ID, *quiet, stderr)
	if final == nil {
		return 1
	}
	if final.Status != domain.RunStatusDone {
		_, _ = fmt.Fprintf(stderr, "splice: %s\n", final.ErrorMessage)
		return 1
	}

	if final.ExportTarget != "" {
		_, _ = fmt.Fprintln(stdout, final.ExportTarget)
	}
	_, _ = fmt.Fprintln(stdout, final.Destination)
	return 0
}

// waitWithProgress draws events until the run is recorded as finished. An
// interrupt cancels the run and keeps waiting for its cleanup.
func waitWithProgress(ctx context.Context, a *app, id string, quiet bool, stderr io.Writer) *domain.Run {
	events := a.events.Subscribe(id)
	defer a.events.Unsubscribe(id, events)

	type result struct {
		run *domain.Run
		err error
	}
	done := make(chan result, 1)
	go func() {
		r, err := a.merges.Wait(context.Background(), id)
		done <- result{r, err}
	}()

	bar := newProgressBar(stderr)
	defer bar.Finish()

	interrupted := ctx.Done()
	for {
		select {
		case ev := <-events:
			if !quiet {
				bar.Update(ev)
			}
		case <-interrupted:
			interrupted = nil
			bar.Finish()
			_, _ = fmt.Fprintln(stderr, "splice: cancelling...")
			if err := a.merges.Cancel(id); err != nil {
				logger.Debug.Printf("cancel run %s: %v", id, err)
			}
		case r := <-done:
			if r.err != nil {
				bar.Finish()
				_, _ = fmt.Fprintf(stderr, "splice: %v\n", r.err)
				return nil
			}
			return r.run
		}
	}
}

func runServe(cfg *config.Config, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	host := fs.String("host", cfg.Server.Host, "Listen host (default loopback without an API key)")
	port := fs.Int("port", cfg.Server.Port, "Listen port")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	a, err := newApp(cfg)
	if err != nil {
		logger.Error.Printf("failed to start: %v", err)
		return 1
	}
	defer a.Close()

	if statuses, err := a.converter.CheckTools(context.Background()); err != nil {
		logger.Warn.Printf("%v", err)
	} else {
		for _, s := range statuses {
			logger.Info.Printf("%s: %s", s.Tool, s.Version)
		}
	}
	if n, err := a.merges.RecoverInterrupted(1000); err != nil {
		logger.Error.Printf("failed to recover interrupted runs: %v", err)
	} else if n > 0 {
		logger.Info.Printf("marked %d interrupted runs as failed", n)
	}
	if cfg.Server.APIKeyHash == "" {
		logger.Warn.Printf("no api_key_hash configured, the API is unauthenticated")
	}

	server := HTTPAdapter.NewServer(a.merges, a.events, cfg.Server.APIKeyHash)
	defer server.Close()

	listen := cfg.Server
	listen.Host = *host
	listen.Port = *port
	addr := listen.ListenAddr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		stopServing(a.merges, httpServer, shutdownTimeout)
		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("splice %s listening on %s", version, addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error.Printf("server failed: %v", err)
		return 1
	}
	<-shutdownDone
	return 0
}

const shutdownTimeout = 30 * time.Second

type runCanceller interface {
	CancelAll(ctx context.Context) error
}

type serverShutdowner interface {
	Shutdown(ctx context.Context) error
}

// stopServing cancels running merges before draining the HTTP server: event
// streams stay open until their run reaches a terminal state. Runs submitted
// while the server drains are cancelled by the second pass.
func stopServing(merges runCanceller, srv serverShutdowner, timeout time.Duration) {
	cancelAll := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := merges.CancelAll(ctx); err != nil {
			logger.Error.Printf("cancel active runs: %v", err)
		}
	}

	cancelAll()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("http shutdown error: %v", err)
	}

	cancelAll()
}

func runCheck(cfg *config.Config, stdout, stderr io.Writer) int {
	logger.SetOutput(stderr)
	a, err := newApp(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}
	defer a.Close()

	statuses, err := a.converter.CheckTools(context.Background())
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TOOL\tPATH\tSTATUS")
	for _, s := range statuses {
		status := s.Version
		if !s.Available() {
			status = "missing"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Tool, s.Path, status)
	}
	_ = tw.Flush()

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "\n%v\n", err)
		return 1
	}
	return 0
}

func runHistory(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 20, "Number of runs to show")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger.SetOutput(stderr)
	a, err := newApp(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}
	defer a.Close()

	runs, err := a.merges.List(*limit)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "splice: %v\n", err)
		return 1
	}
	printHistory(stdout, runs)
	return 0
}

func printHistory(w io.Writer, runs []*domain.Run) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tSTARTED\tTOOK\tINPUTS\tOUTPUT")
	for _, r := range runs {
		took := "-"
		if !r.FinishedAt.IsZero() {
			took = domain.FormatDuration(r.FinishedAt.Sub(r.CreatedAt).Seconds())
		}
		output := r.Destination
		if r.Status == domain.RunStatusFailed {
			output = r.ErrorMessage
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Status, r.CreatedAt.Local().Format("2006-01-02 15:04"), took, len(r.Inputs), logger.SanitizeForLog(output))
	}
	_ = tw.Flush()
}
