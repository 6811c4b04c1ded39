package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/api"
	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/deck"
	"github.com/shaz1409/maturity-auto/internal/deck/pptx"
	"github.com/shaz1409/maturity-auto/internal/llm"
	"github.com/shaz1409/maturity-auto/internal/recommend"
	"github.com/shaz1409/maturity-auto/internal/report"
	"github.com/shaz1409/maturity-auto/internal/sheets"
	"github.com/shaz1409/maturity-auto/internal/store"
	"github.com/shaz1409/maturity-auto/internal/survey"
	"github.com/shaz1409/maturity-auto/internal/utils"
)

var (
	// Global flags
	dryRun     bool
	sheetFile  string
	schemaFile string
)

var rootCmd = &cobra.Command{
	Use:   "maturity-auto",
	Short: "Generates scored maturity reports from survey exports",
	Long: `maturity-auto turns a marketing maturity survey export into one scored
PowerPoint report per respondent: per-category maturity scores, generated
recommendations and a score indicator placed on each category slide.

Configuration comes from the environment (or a .env file); a few common
settings can be overridden with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runCmd processes the whole dataset once and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load the survey data and generate all reports",
	RunE:  runReports,
}

// serveCmd exposes the same run as an HTTP trigger.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an HTTP endpoint that triggers report runs",
	RunE:  serveHTTP,
}

// checkCmd audits the dataset against the schema without generating anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the survey export against the schema",
	Long: `check loads the survey export and the schema, maps the columns and
reports how the questions partition into categories: question counts,
normalization collisions and dropped rows. No reports are generated and
no recommendation calls are made.`,
	RunE: checkDataset,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&sheetFile, "sheet-file", "", "Local survey export (.csv or .xlsx), overrides SHEET_FILE")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema-file", "", "Survey schema YAML, overrides SCHEMA_FILE")

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Score respondents and stop before generating reports")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pipeline holds the collaborators wired for one process lifetime. It also
// implements api.Runner so serve mode can trigger runs.
type pipeline struct {
	cfg       *config.Config
	logger    *zap.SugaredLogger
	source    *sheets.Source
	generator *report.Generator
}

func buildPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.App.LogLevel, cfg.App.Env == config.Production)
	logger.Infof("Starting maturity report service")
	logger.Infof("Environment: %s", cfg.App.Env)
	logger.Infof("Log level: %s", cfg.App.LogLevel)
	logger.Infof("Template: %s", cfg.Template.Path)

	schema, err := survey.LoadSchema(cfg.Output.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	source, err := sheets.NewSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet source: %w", err)
	}
	llmClient, err := llm.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	engine := recommend.NewEngine(llmClient, logger)

	var remote report.Store
	if cfg.Store.Enabled {
		client, err := store.NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create store client: %w", err)
		}
		remote = client
		logger.Infof("Remote store enabled, bucket %s", cfg.Store.Bucket)
	}

	opener := func(path string) (deck.Document, error) { return pptx.Open(path) }
	generator := report.NewGenerator(cfg, schema, engine, remote, opener, logger)

	return &pipeline{cfg: cfg, logger: logger, source: source, generator: generator}, nil
}

// Run implements api.Runner: fetch a fresh dataset, then generate reports.
func (p *pipeline) Run(dryRun bool) (*report.Stats, error) {
	table, err := p.source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load survey data: %w", err)
	}
	return p.generator.Run(*table, dryRun)
}

func runReports(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.logger.Sync()

	_, err = p.Run(dryRun)
	return err
}

func serveHTTP(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.logger.Sync()

	handler := api.NewHandler(p.logger, p, p.cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Maturity report service is running\n")
	})

	api.RegisterRoutes(mux, handler)

	p.logger.Infof("Starting server on port %s", p.cfg.App.ServerPort)
	p.logger.Infof("Endpoints:")
	p.logger.Infof("  GET  /health")
	p.logger.Infof("  POST /run")
	return http.ListenAndServe("0.0.0.0:"+p.cfg.App.ServerPort, mux)
}

func checkDataset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cfg)

	logger := utils.NewLogger(cfg.App.LogLevel, cfg.App.Env == config.Production)
	defer logger.Sync()

	schema, err := survey.LoadSchema(cfg.Output.SchemaFile)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	source, err := sheets.NewSource(cfg, logger)
	if err != nil {
		return err
	}
	table, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load survey data: %w", err)
	}

	mapping := survey.MapColumns(table.Columns, schema)
	categories := survey.BuildCategoryMap(mapping.QuestionKeys(), schema)
	respondents, dropped := survey.BuildRespondents(table.Columns, table.Rows, schema)

	logger.Infof("Schema %s: %d categories, %d questions expected", schema.Version, len(schema.Categories), schema.QuestionCount())
	logger.Infof("Dataset: %d question columns, %d respondents, %d dropped rows", len(mapping.QuestionKeys()), len(respondents), dropped)
	if n := mapping.Collisions(); n > 0 {
		logger.Warnf("%d column names collide after normalization", n)
	}
	for _, category := range categories.Order() {
		logger.Infof("  %s: %d questions", category, len(categories.Questions(category)))
	}

	if got, want := len(mapping.QuestionKeys()), schema.QuestionCount(); got != want {
		return fmt.Errorf("dataset has %d question columns, schema expects %d", got, want)
	}
	logger.Infof("Dataset matches schema")
	return nil
}

// applyFlags lets command-line flags win over environment configuration.
func applyFlags(cfg *config.Config) {
	if sheetFile != "" {
		cfg.Sheet.File = sheetFile
	}
	if schemaFile != "" {
		cfg.Output.SchemaFile = schemaFile
	}
}
