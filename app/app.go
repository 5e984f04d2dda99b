// Package app wires the analysis commands together: it owns the
// database connection and the analysis configuration, runs the
// queries, invokes the scorers and renders the reports. Each public
// method backs one CLI subcommand.
package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/maxlive/prospector/config"
	"github.com/maxlive/prospector/db"
)

// App holds the shared state of one invocation.
type App struct {
	cfg *config.Config
	db  *db.DB
	out io.Writer
}

// New returns an App writing console reports to out.
func New(cfg *config.Config, database *db.DB, out io.Writer) *App {
	return &App{cfg: cfg, db: database, out: out}
}

// section runs one report section, logging a warning and carrying on
// when it fails. Analysts prefer a partial report over an aborted run.
func (a *App) section(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("report section failed", "section", name, "err", err)
	}
}

// excluded reports whether an account name matches one of the
// configured exclusion patterns (known bias accounts and the internal
// org). Patterns use SQL LIKE syntax with leading/trailing wildcards.
func (a *App) excluded(accountName string) bool {
	for _, pattern := range a.cfg.ExcludedAccounts {
		if likeMatch(accountName, pattern) {
			return true
		}
	}
	return false
}

// likeMatch evaluates the subset of SQL LIKE used by the exclusion
// patterns: optional leading and trailing % wildcards around a
// literal, matched case-insensitively.
func likeMatch(s, pattern string) bool {
	s = strings.ToLower(s)
	hasPrefix := strings.HasSuffix(pattern, "%")
	hasSuffix := strings.HasPrefix(pattern, "%")
	literal := strings.ToLower(strings.Trim(pattern, "%"))
	switch {
	case hasPrefix && hasSuffix:
		return strings.Contains(s, literal)
	case hasSuffix:
		return strings.HasSuffix(s, literal)
	case hasPrefix:
		return strings.HasPrefix(s, literal)
	}
	return s == literal
}

// money formats a dollar amount with thousands separators, no cents.
// Report readers compare media spends at a glance; cents are noise.
func money(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatFloat(amount, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// percent renders part/whole as "part (pc%)".
func percent(part, whole int) string {
	if whole == 0 {
		return fmt.Sprintf("%d", part)
	}
	return fmt.Sprintf("%d (%.1f%%)", part, 100*float64(part)/float64(whole))
}
