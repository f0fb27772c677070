package knowledge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
	"github.com/sandevgo/redwan/pkg/log"
)

const maxParallelReads = 4

// Snapshot is the immutable knowledge state shared by all requests.
type Snapshot struct {
	Intents  *intent.Database
	Lexicon  *lexicon.Dictionary
	Reports  []SourceReport
	LoadedAt time.Time
}

// Failed returns the reports of sources that were skipped.
func (s *Snapshot) Failed() []SourceReport {
	var out []SourceReport
	for _, r := range s.Reports {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

type Loader struct {
	dataPath       string
	intentSources  []string
	lexiconSources []string
	embedded       fs.FS
}

// NewLoader reads sources from the configured data directory, falling back
// to embedded for names missing on disk.
func NewLoader(cfg core.KnowledgeConfig, embedded fs.FS) *Loader {
	return &Loader{
		dataPath:       cfg.GetDataPath(),
		intentSources:  cfg.GetIntentSources(),
		lexiconSources: cfg.GetLexiconSources(),
		embedded:       embedded,
	}
}

func (l *Loader) DataPath() string {
	return l.dataPath
}

type intentSlot struct {
	report  SourceReport
	intents []core.Intent
}

type lexiconSlot struct {
	report  SourceReport
	entries []core.LexiconEntry
}

// Load reads every source concurrently and merges them in configured order.
// Unreadable or unparsable sources are skipped and reported. An intent that
// fails validation skips its whole source, reported with
// intent.ErrInvalidIntent.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	logger := log.FromCtx(ctx)

	intentSlots := make([]intentSlot, len(l.intentSources))
	lexiconSlots := make([]lexiconSlot, len(l.lexiconSources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)

	for i, name := range l.intentSources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep := SourceReport{Kind: KindIntents, Name: name}
			src, err := readSource(l.dataPath, l.embedded, KindIntents, name)
			rep.Path, rep.Embedded = src.path, src.embedded
			if err == nil {
				var intents []core.Intent
				if intents, err = decodeIntents(src); err == nil {
					err = validateIntents(intents)
				}
				if err == nil {
					rep.Count = len(intents)
					intentSlots[i].intents = intents
				}
			}
			rep.Err = err
			intentSlots[i].report = rep
			return nil
		})
	}

	for i, name := range l.lexiconSources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep := SourceReport{Kind: KindLexicon, Name: name}
			src, err := readSource(l.dataPath, l.embedded, KindLexicon, name)
			rep.Path, rep.Embedded = src.path, src.embedded
			if err == nil {
				var entries []core.LexiconEntry
				if entries, err = decodeLexicon(src); err == nil {
					rep.Count = len(entries)
					lexiconSlots[i].entries = entries
				}
			}
			rep.Err = err
			lexiconSlots[i].report = rep
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}

	snap := &Snapshot{LoadedAt: time.Now()}

	var intents []core.Intent
	for _, s := range intentSlots {
		snap.Reports = append(snap.Reports, s.report)
		if s.report.Err != nil {
			logSkipped(logger, s.report)
			continue
		}
		intents = append(intents, s.intents...)
	}

	var entries []core.LexiconEntry
	for _, s := range lexiconSlots {
		snap.Reports = append(snap.Reports, s.report)
		if s.report.Err != nil {
			logSkipped(logger, s.report)
			continue
		}
		entries = append(entries, s.entries...)
	}

	db, err := intent.NewDatabase(intents)
	if err != nil {
		return nil, fmt.Errorf("failed to build intent database: %w", err)
	}
	snap.Intents = db
	snap.Lexicon = lexicon.NewDictionary(entries)

	logger.Debug().
		Int("intents", db.Len()).
		Int("patterns", db.PatternCount()).
		Int("lexicon", snap.Lexicon.Len()).
		Msg("knowledge loaded")

	return snap, nil
}

// validateIntents checks one source on its own. A bad intent skips only the
// source that holds it.
func validateIntents(intents []core.Intent) error {
	if _, err := intent.NewDatabase(intents); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}
	return nil
}

func logSkipped(logger *zerolog.Logger, r SourceReport) {
	ev := logger.Warn().Str("kind", string(r.Kind)).Str("source", r.Name).Err(r.Err)
	if errors.Is(r.Err, ErrSourceNotFound) {
		ev.Msg("knowledge source not found, skipping")
		return
	}
	ev.Msg("knowledge source is malformed, skipping")
}
