// Package main is the gridtab command line tool.
//
// gridtab opens a YAML workbook file, materializes one of its sheets (or a
// named region) as a table and prints it, optionally filtered, sorted or
// reduced to the distinct values of one field.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gridtab/gridtab/internal/filegrid"
	"github.com/gridtab/gridtab/internal/tabular"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "gridtab: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	file := flag.String("file", "", "Workbook file to open")
	sheet := flag.String("sheet", "", "Sheet to materialize")
	name := flag.String("name", "", "Named region to materialize (overrides -sheet)")
	headerRow := flag.Int("header", 1, "1-based header row for -sheet")
	where := flag.String("where", "", "Equality filters, all must hold (field=value,field=value)")
	anyOf := flag.String("any", "", "Equality filters, one must hold (field=value|field=value)")
	sortField := flag.String("sort", "", "Field to sort by")
	desc := flag.Bool("desc", false, "Sort descending")
	distinct := flag.String("distinct", "", "Print the distinct values of one field instead of rows")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	if *sheet == "" && *name == "" {
		return fmt.Errorf("one of -sheet or -name is required")
	}
	initLogger(*logLevel)

	store, err := filegrid.Open(*file)
	if err != nil {
		return err
	}
	var table *tabular.Table
	if *name != "" {
		table, err = tabular.ForName(store, *name)
	} else {
		table, err = tabular.ForSheet(store, *sheet, *headerRow)
	}
	if err != nil {
		return err
	}

	if *sortField != "" {
		if err := table.SortBy(*sortField, !*desc); err != nil {
			return err
		}
	}

	if *distinct != "" {
		values, err := table.Distinct(*distinct)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Println(formatCell(v))
		}
		return nil
	}

	clauses, err := parseCriteria(*where, *anyOf)
	if err != nil {
		return err
	}
	rows, err := table.Select(clauses...)
	if err != nil {
		return err
	}
	return printRows(table, rows)
}

// parseCriteria builds the clause list: every -where equality must hold,
// plus one -any equality when given.
func parseCriteria(where, anyOf string) ([]tabular.Clause, error) {
	var clauses []tabular.Clause
	if where != "" {
		for _, part := range strings.Split(where, ",") {
			eq, err := parseEq(part)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, eq)
		}
	}
	if anyOf != "" {
		var group []tabular.Clause
		for _, part := range strings.Split(anyOf, "|") {
			eq, err := parseEq(part)
			if err != nil {
				return nil, err
			}
			group = append(group, eq)
		}
		clauses = append(clauses, tabular.Or(group...))
	}
	return clauses, nil
}

func parseEq(s string) (tabular.Clause, error) {
	field, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok || field == "" {
		return nil, fmt.Errorf("malformed filter %q, want field=value", s)
	}
	return tabular.Eq{Field: field, Value: parseValue(value)}, nil
}

// parseValue guesses the scalar type of a flag value so numeric cells match.
func parseValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func printRows(table *tabular.Table, rows tabular.Rows) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 8, 2, ' ', 0)
	header := table.Header()
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range rows {
		cells := make([]string, len(header))
		for i, label := range header {
			v, err := r.Value(label)
			if err != nil {
				return err
			}
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func formatCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// initLogger installs a tinted structured logger on stderr.
func initLogger(level string) {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}
