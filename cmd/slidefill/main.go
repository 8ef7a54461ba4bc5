package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/slidefill"
	"github.com/tsawler/slidefill/model"
	"github.com/tsawler/slidefill/pptx"
)

// maxTemplateSize caps how large a template file may be before we refuse
// to open it.
const maxTemplateSize = 100 << 20 // 100 MB

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded configuration
	cfg *Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slidefill",
	Short: "slidefill - fill slide-deck templates with structured content",
	Long: `slidefill analyzes PPTX templates and fills them with new content.

It classifies each slide and shape by purpose (titles, date fields,
metric values, bullet lists), matches a content record onto the
matching shapes, and rewrites the deck while preserving layout and
formatting.

Content records are JSON or Markdown files carrying a date, labeled
metrics, and key points.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// extractCmd dumps the template structure as JSON
var extractCmd = &cobra.Command{
	Use:   "extract [template.pptx]",
	Short: "Extract the template structure as JSON",
	Long: `Reads a PPTX template and prints a structure record: every slide
with its text-bearing shapes, their positions, text, and paragraph
indentation levels.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

// analyzeCmd prints the classification of each slide and shape
var analyzeCmd = &cobra.Command{
	Use:   "analyze [template.pptx]",
	Short: "Classify the template's slides and shapes",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

// planCmd matches content against the template and prints the updates
var planCmd = &cobra.Command{
	Use:   "plan [template.pptx]",
	Short: "Match content onto the template and print the update batch",
	Long: `Matches a content record against the template and prints the
resulting update batch as JSON, without modifying anything. The batch
can be reviewed, edited, and applied later with the apply command.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

// applyCmd applies a previously planned update batch
var applyCmd = &cobra.Command{
	Use:   "apply [template.pptx]",
	Short: "Apply an update batch to the template",
	Long: `Applies a JSON update batch (as produced by the plan command) to
the template and writes the result. Updates referencing slides or
shapes that do not exist are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

// fillCmd plans and applies in one step
var fillCmd = &cobra.Command{
	Use:   "fill [template.pptx]",
	Short: "Match content onto the template and write the filled deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runFill,
}

var (
	contentPath string
	updatesPath string
	outPath     string
	slideNums   []int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "slidefill.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	extractCmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to file instead of stdout")

	planCmd.Flags().StringVarP(&contentPath, "content", "c", "", "content file (JSON or Markdown)")
	planCmd.Flags().IntSliceVarP(&slideNums, "slides", "s", nil, "restrict to these slide numbers")
	planCmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to file instead of stdout")
	_ = planCmd.MarkFlagRequired("content")

	applyCmd.Flags().StringVarP(&updatesPath, "updates", "u", "", "update batch file (JSON)")
	applyCmd.Flags().StringVarP(&outPath, "out", "o", "", "output PPTX path")
	_ = applyCmd.MarkFlagRequired("updates")
	_ = applyCmd.MarkFlagRequired("out")

	fillCmd.Flags().StringVarP(&contentPath, "content", "c", "", "content file (JSON or Markdown)")
	fillCmd.Flags().IntSliceVarP(&slideNums, "slides", "s", nil, "restrict to these slide numbers")
	fillCmd.Flags().StringVarP(&outPath, "out", "o", "", "output PPTX path")
	_ = fillCmd.MarkFlagRequired("content")
	_ = fillCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(extractCmd, analyzeCmd, planCmd, applyCmd, fillCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// validateTemplate rejects paths that are not plausible PPTX templates
// before any parsing happens.
func validateTemplate(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pptx") {
		return fmt.Errorf("template must be a .pptx file: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("template not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("template is a directory: %s", path)
	}
	if info.Size() > maxTemplateSize {
		return fmt.Errorf("template exceeds %d bytes: %s", int64(maxTemplateSize), path)
	}
	return nil
}

// newFiller builds a Filler for the template with all configured
// overrides applied.
func newFiller(template string) (*slidefill.Filler, error) {
	fitCfg, err := cfg.FitOverrides()
	if err != nil {
		return nil, err
	}

	f := slidefill.Open(template).
		WithClassifyConfig(cfg.ClassifyOverrides()).
		WithFitConfig(fitCfg)

	summarizer, err := cfg.Summarizer()
	if err != nil {
		return nil, err
	}
	if summarizer != nil {
		f = f.WithSummarizer(summarizer)
	}
	if len(slideNums) > 0 {
		f = f.Slides(slideNums...)
	}
	return f, nil
}

// writeOutput writes data to outPath, or stdout when no path is set.
func writeOutput(data []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func runExtract(cmd *cobra.Command, args []string) error {
	template := args[0]
	if err := validateTemplate(template); err != nil {
		return err
	}

	f, err := newFiller(template)
	if err != nil {
		return err
	}
	data, err := f.Structure()
	if err != nil {
		return err
	}

	logger.Debug("Extracted structure", zap.String("template", template), zap.Int("bytes", len(data)))
	return writeOutput(data)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	template := args[0]
	if err := validateTemplate(template); err != nil {
		return err
	}

	f, err := newFiller(template)
	if err != nil {
		return err
	}
	analysis, err := f.Analyze()
	if err != nil {
		return err
	}

	for _, slide := range analysis.Slides {
		fmt.Printf("slide %d: %s\n", slide.Number, slide.Type)

		indexes := make([]int, 0, len(slide.Purposes))
		for index := range slide.Purposes {
			indexes = append(indexes, index)
		}
		sort.Ints(indexes)
		for _, index := range indexes {
			fmt.Printf("  shape %d: %s\n", index, slide.Purposes[index])
		}
		for _, pair := range slide.Pairs {
			fmt.Printf("  pair: %q -> shape %d (gap %.0f)\n", pair.LabelText(), pair.Value.Index, pair.Gap)
		}
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	template := args[0]
	if err := validateTemplate(template); err != nil {
		return err
	}

	f, err := newFiller(template)
	if err != nil {
		return err
	}
	batch, warnings, err := f.WithContentFile(contentPath).Plan(cmd.Context())
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	logger.Info("Planned updates",
		zap.String("template", template),
		zap.Int("updates", len(batch.Updates)),
		zap.Int("warnings", len(warnings)))

	data, err := batch.MarshalUpdates()
	if err != nil {
		return err
	}
	return writeOutput(data)
}

func runApply(cmd *cobra.Command, args []string) error {
	template := args[0]
	if err := validateTemplate(template); err != nil {
		return err
	}

	data, err := os.ReadFile(updatesPath)
	if err != nil {
		return fmt.Errorf("reading updates: %w", err)
	}
	batch, err := model.DecodeUpdates(data)
	if err != nil {
		return err
	}

	r, err := pptx.Open(template)
	if err != nil {
		return err
	}
	defer r.Close()

	res, err := pptx.Apply(template, outPath, r.Deck(), batch)
	if err != nil {
		return err
	}
	reportResult(res)
	return nil
}

func runFill(cmd *cobra.Command, args []string) error {
	template := args[0]
	if err := validateTemplate(template); err != nil {
		return err
	}

	f, err := newFiller(template)
	if err != nil {
		return err
	}
	res, warnings, err := f.WithContentFile(contentPath).Fill(cmd.Context(), outPath)
	if err != nil {
		return err
	}
	reportWarnings(warnings)
	reportResult(res)

	logger.Info("Filled template",
		zap.String("template", template),
		zap.String("out", outPath),
		zap.Int("applied", res.Applied))
	return nil
}

func reportWarnings(warnings []slidefill.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}

func reportResult(res *pptx.Result) {
	fmt.Printf("applied %d update(s)\n", res.Applied)
	for _, skip := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped update %d: %s\n", skip.Index, skip.Reason)
	}
}
