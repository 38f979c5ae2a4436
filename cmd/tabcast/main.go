// tabcast - casts CSV columns to typed values and writes CSV or JSON
//
// Usage:
//
//	tabcast [flags]
//
//	-in file|url          CSV input, stdin when empty
//	-out file|dir         output file or directory, stdout when empty
//	-format csv|json      output format (default csv)
//	-types col:type,...   column types: int, float, decimal, bool, date, time, datetime
//	-thousand-sep ,       thousands separator
//	-decimal-sep .        decimal separator
//	-places 2             decimal places
//	-round-down           round decimals half down
//	-day-first            read 01/02/2023 as 1 February
//	-time-format layout   output time layout, e.g. %Y-%m-%d or YYYY-MM-DD
//	-delimiter ,          CSV delimiter
//	-encoding utf-8       output CSV charset, e.g. windows-1252
//	-bom                  prefix CSV output with a byte order mark
//	-log-level info       debug, info, warn or error
//
// Each flag defaults to its TABCAST_ environment variable, e.g. TABCAST_TYPES=id:int,
// which may also be set in a .env file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err = Run(ctx, cfg, os.Stdin, os.Stdout, logger); err != nil {
		cancel()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "tabcast: %v\n", err)
	os.Exit(1)
}
