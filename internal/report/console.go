// Package report renders seeding progress for people (Console) and machines (JSON).
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rana718/ecomseed/internal/model"
	"github.com/Rana718/ecomseed/internal/seeder"
	"github.com/fatih/color"
)

type Console struct {
	out   io.Writer
	start time.Time

	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	white  *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		white:  color.New(color.FgWhite),
	}
}

func (c *Console) Begin(seed int64, policy seeder.Policy) {
	c.start = time.Now()
	c.cyan.Fprintf(c.out, "🌱 Seeding e-commerce data (seed %d, policy %s)\n", seed, policy)
}

func (c *Console) Stage(set model.EntitySet) {
	c.cyan.Fprintf(c.out, "📦 Generating %s...\n", set)
}

func (c *Console) Cleared(sets []model.EntitySet) {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = string(s)
	}
	c.yellow.Fprintf(c.out, "🗑️  Cleared %d tables: %s\n", len(sets), strings.Join(names, ", "))
}

func (c *Console) Skip(set model.EntitySet, existing int64) {
	c.yellow.Fprintf(c.out, "⏭️  %s already has %d rows, skipping\n", set, existing)
}

func (c *Console) Progress(set model.EntitySet, done int) {
	c.white.Fprintf(c.out, "   … %d %s written\n", done, set)
}

func (c *Console) Inserted(set model.EntitySet, n int) {
	c.green.Fprintf(c.out, "✅ %s: %d rows\n", set, n)
}

func (c *Console) Warn(set model.EntitySet, msg string) {
	c.yellow.Fprintf(c.out, "⚠️  %s: %s\n", set, msg)
}

func (c *Console) Finish(summary *seeder.Summary) {
	fmt.Fprintln(c.out)
	c.green.Fprintf(c.out, "🎉 Seeding finished in %s (seed %d)\n", time.Since(c.start).Round(time.Millisecond), summary.Seed)
	for _, set := range model.AllSets {
		r, ok := summary.Results[set]
		if !ok {
			continue
		}
		if r.Skipped {
			fmt.Fprintf(c.out, "   %-22s %s\n", set, c.yellow.Sprintf("kept %d existing", r.Existing))
			continue
		}
		fmt.Fprintf(c.out, "   %-22s %s\n", set, c.green.Sprintf("%d inserted", r.Inserted))
	}
	if len(summary.Warnings) > 0 {
		c.yellow.Fprintf(c.out, "💡 %d warning(s); rerun once the missing rows exist\n", len(summary.Warnings))
	}
}

// PrintCounts writes one line per entity table, in insertion order.
func PrintCounts(out io.Writer, counts map[model.EntitySet]int64) {
	color.New(color.FgCyan, color.Bold).Fprintln(out, "📊 Table row counts")
	for _, set := range model.AllSets {
		n := counts[set]
		value := color.GreenString("%d", n)
		if n == 0 {
			value = color.YellowString("empty")
		}
		fmt.Fprintf(out, "   %-22s %s\n", set, value)
	}
}
