// Package report drives the whole pipeline for one dataset: score every
// respondent, fill a fresh template copy per respondent, and hand the result
// to the output directory and (optionally) the remote store. One respondent's
// failure never stops the run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/deck"
	"github.com/shaz1409/maturity-auto/internal/recommend"
	"github.com/shaz1409/maturity-auto/internal/sheets"
	"github.com/shaz1409/maturity-auto/internal/survey"
)

// Recommender yields the advice block for one scored category.
type Recommender interface {
	Generate(category string, score float64, questions []survey.QuestionScore) recommend.Result
}

// Store is the optional remote destination for finished reports. A nil Store
// means local output only.
type Store interface {
	Exists(name string) (bool, error)
	Upload(name string, data []byte) error
}

// TemplateOpener loads a fresh template document. It is called once per
// generated report so mutations never leak between respondents.
type TemplateOpener func(path string) (deck.Document, error)

// Stats summarizes one run.
type Stats struct {
	Respondents int
	Generated   int
	Skipped     int
	Failed      int
	DroppedRows int
	Collisions  int
}

type Generator struct {
	cfg    *config.Config
	schema *survey.Schema
	engine Recommender
	store  Store
	open   TemplateOpener
	logger *zap.SugaredLogger
}

func NewGenerator(cfg *config.Config, schema *survey.Schema, engine Recommender, store Store, open TemplateOpener, logger *zap.SugaredLogger) *Generator {
	return &Generator{cfg: cfg, schema: schema, engine: engine, store: store, open: open, logger: logger}
}

type scoredRespondent struct {
	respondent survey.Respondent
	scores     []survey.CategoryScore
}

type outcome int

const (
	outcomeGenerated outcome = iota
	outcomeSkipped
)

// Run scores every respondent in the table and produces one report per
// respondent. With dryRun the run stops after the scores summary, before any
// template, generation or store activity.
func (g *Generator) Run(table sheets.Table, dryRun bool) (*Stats, error) {
	logger := g.logger.With("run_id", uuid.NewString())

	start := time.Now()
	logger.Infof("Maturity assessment run started at %s", start.Format(time.RFC3339))

	mapping := survey.MapColumns(table.Columns, g.schema)
	if n := mapping.Collisions(); n > 0 {
		logger.Warnf("Column normalization produced %d collision(s); later columns shadow earlier ones", n)
	}
	if expected, got := g.schema.QuestionCount(), len(mapping.QuestionKeys()); got != expected {
		logger.Warnf("Dataset has %d question columns, schema %q expects %d", got, g.schema.Version, expected)
	}

	categories := survey.BuildCategoryMap(mapping.QuestionKeys(), g.schema)
	respondents, dropped := survey.BuildRespondents(table.Columns, table.Rows, g.schema)
	if dropped > 0 {
		logger.Warnf("Dropped %d row(s) with blank or duplicate identities", dropped)
	}

	stats := &Stats{Respondents: len(respondents), DroppedRows: dropped, Collisions: mapping.Collisions()}

	scored := make([]scoredRespondent, 0, len(respondents))
	for _, r := range respondents {
		sr := scoredRespondent{respondent: r, scores: survey.ScoreRespondent(r, categories, mapping)}
		scored = append(scored, sr)
		logger.Infof("Scores for %s: %s", r.Identity, formatScores(sr.scores))
	}

	if dryRun {
		logger.Infof("Dry run: %d respondent(s) scored, nothing generated", len(scored))
		return stats, nil
	}

	if err := os.MkdirAll(g.cfg.Output.Dir, 0o755); err != nil {
		return stats, fmt.Errorf("creating output directory %s: %w", g.cfg.Output.Dir, err)
	}

	titles := g.schema.SlideTitles()
	for _, sr := range scored {
		result, err := g.safeProcess(sr, categories, mapping, titles, logger)
		switch {
		case err != nil:
			stats.Failed++
			logger.Errorf("Report for %s failed: %v", sr.respondent.Identity, err)
		case result == outcomeSkipped:
			stats.Skipped++
		default:
			stats.Generated++
		}
	}

	logger.Infof("Run finished in %s: %d generated, %d skipped, %d failed",
		time.Since(start).Round(time.Millisecond), stats.Generated, stats.Skipped, stats.Failed)
	return stats, nil
}

// safeProcess runs one respondent behind a recover so a panic in template or
// shape handling is downgraded to a per-respondent failure.
func (g *Generator) safeProcess(sr scoredRespondent, categories *survey.CategoryMap, mapping *survey.ColumnMapping, titles map[string]string, logger *zap.SugaredLogger) (result outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return g.process(sr, categories, mapping, titles, logger)
}

func (g *Generator) process(sr scoredRespondent, categories *survey.CategoryMap, mapping *survey.ColumnMapping, titles map[string]string, logger *zap.SugaredLogger) (outcome, error) {
	identity := sr.respondent.Identity
	name := OutputName(identity)
	outPath := filepath.Join(g.cfg.Output.Dir, name)

	if _, err := os.Stat(outPath); err == nil {
		logger.Infof("Skipping %s: %s already exists", identity, outPath)
		return outcomeSkipped, nil
	}
	if g.store != nil {
		exists, err := g.store.Exists(name)
		if err != nil {
			return outcomeGenerated, fmt.Errorf("checking store for %s: %w", name, err)
		}
		if exists {
			logger.Infof("Skipping %s: %s already uploaded", identity, name)
			return outcomeSkipped, nil
		}
	}

	doc, err := g.open(g.cfg.Template.Path)
	if err != nil {
		return outcomeGenerated, fmt.Errorf("loading template: %w", err)
	}

	slides := slidesByCategory(doc, titles)
	for _, cs := range sr.scores {
		if cs.Value == nil {
			logger.Debugf("No score for %s in %q, slide left untouched", identity, cs.Category)
			continue
		}
		slide, ok := slides[cs.Category]
		if !ok {
			logger.Warnf("No slide found for category %q", cs.Category)
			continue
		}
		g.populateSlide(slide, cs.Category, *cs.Value, sr.respondent, categories, mapping, logger)
	}

	if err := doc.Save(outPath); err != nil {
		return outcomeGenerated, fmt.Errorf("saving %s: %w", outPath, err)
	}
	logger.Infof("Generated %s", outPath)

	if g.store != nil {
		data, err := os.ReadFile(outPath)
		if err != nil {
			return outcomeGenerated, fmt.Errorf("reading %s for upload: %w", outPath, err)
		}
		if err := g.store.Upload(name, data); err != nil {
			return outcomeGenerated, fmt.Errorf("uploading %s: %w", name, err)
		}
	}

	return outcomeGenerated, nil
}

// populateSlide resolves the slide's role shapes, generates advice and
// applies the three mutations. Each mutation degrades independently: a
// missing shape or a failed move costs that mutation, nothing else.
func (g *Generator) populateSlide(slide deck.Slide, category string, score float64, r survey.Respondent, categories *survey.CategoryMap, mapping *survey.ColumnMapping, logger *zap.SugaredLogger) {
	bundle := deck.Resolve(slide.Elements())
	questions := survey.QuestionScores(r, categories.Questions(category), mapping)
	result := g.engine.Generate(category, score, questions)
	logger.Infof("Generated advice for %q (score %.2f)", category, score)
	logger.Debugf("Summary for %q: %s", category, result.Summary)

	if bundle.ScoreLabel != nil {
		if err := bundle.ScoreLabel.SetText(fmt.Sprintf("%.2f/4.0", score)); err != nil {
			logger.Warnf("Setting score text on %q: %v", category, err)
		}
	}
	if bundle.RecommendationsLabel != nil {
		if err := bundle.RecommendationsLabel.SetText(formatItems(result.Items)); err != nil {
			logger.Warnf("Setting recommendations text on %q: %v", category, err)
		}
	}
	if err := deck.PlaceIndicator(bundle.ReferenceLine, bundle.Indicator, score); err != nil {
		logger.Warnf("Positioning indicator on %q: %v", category, err)
	}
}

// slidesByCategory resolves which slide belongs to which category by matching
// placeholder text against the schema's slide-title table. Every placeholder
// on a slide is a candidate; the first whose trimmed text is a known title
// claims the slide, so a leading subtitle or body placeholder is scanned
// past, not mistaken for the title. A duplicate title means the later slide
// wins.
func slidesByCategory(doc deck.Document, titles map[string]string) map[string]deck.Slide {
	byCategory := make(map[string]deck.Slide)
	for _, slide := range doc.Slides() {
		for _, text := range deck.PlaceholderTexts(slide) {
			if category, ok := titles[strings.TrimSpace(text)]; ok {
				byCategory[category] = slide
				break
			}
		}
	}
	return byCategory
}

// formatItems renders the recommendations as a numbered list with a blank
// line between entries.
func formatItems(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(parts, "\n\n")
}

func formatScores(scores []survey.CategoryScore) string {
	parts := make([]string, 0, len(scores))
	for _, cs := range scores {
		if cs.Value == nil {
			parts = append(parts, cs.Category+"=-")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.2f", cs.Category, *cs.Value))
	}
	return strings.Join(parts, ", ")
}
