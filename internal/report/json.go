package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Rana718/ecomseed/internal/model"
	"github.com/Rana718/ecomseed/internal/seeder"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// JSON writes one newline-delimited event per callback, all tagged with the run id.
type JSON struct {
	logger zerolog.Logger
	start  time.Time
}

func NewJSON(out io.Writer) *JSON {
	return &JSON{
		logger: zerolog.New(out).With().Timestamp().Str("run_id", uuid.NewString()).Logger(),
	}
}

func (j *JSON) Begin(seed int64, policy seeder.Policy) {
	j.start = time.Now()
	j.logger.Info().Str("event", "begin").Int64("seed", seed).Str("policy", string(policy)).Msg("seeding started")
}

func (j *JSON) Stage(set model.EntitySet) {
	j.logger.Info().Str("event", "stage").Str("set", string(set)).Msg("generating")
}

func (j *JSON) Cleared(sets []model.EntitySet) {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = string(s)
	}
	j.logger.Info().Str("event", "cleared").Strs("sets", names).Msg("entity sets cleared")
}

func (j *JSON) Skip(set model.EntitySet, existing int64) {
	j.logger.Info().Str("event", "skip").Str("set", string(set)).Int64("existing", existing).Msg("set already populated")
}

func (j *JSON) Progress(set model.EntitySet, done int) {
	j.logger.Debug().Str("event", "progress").Str("set", string(set)).Int("done", done).Msg("batch committed")
}

func (j *JSON) Inserted(set model.EntitySet, n int) {
	j.logger.Info().Str("event", "inserted").Str("set", string(set)).Int("rows", n).Msg("rows inserted")
}

func (j *JSON) Warn(set model.EntitySet, msg string) {
	j.logger.Warn().Str("event", "warning").Str("set", string(set)).Msg(msg)
}

func (j *JSON) Finish(summary *seeder.Summary) {
	inserted := zerolog.Dict()
	for _, set := range model.AllSets {
		r, ok := summary.Results[set]
		if !ok || r.Skipped {
			continue
		}
		inserted.Int(string(set), r.Inserted)
	}
	j.logger.Info().
		Str("event", "finish").
		Int64("seed", summary.Seed).
		Dur("elapsed", time.Since(j.start)).
		Dict("inserted", inserted).
		Int("warnings", len(summary.Warnings)).
		Msg("seeding finished")
}

// New picks a reporter by output format: "text" (default) or "json".
func New(format string, out io.Writer) (seeder.Reporter, error) {
	switch format {
	case "", "text":
		return NewConsole(out), nil
	case "json":
		return NewJSON(out), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
