package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/slidefill/classify"
	"github.com/tsawler/slidefill/fit"
)

// Config holds the tool configuration loaded from YAML. Every field is
// optional; zero values fall back to the library defaults.
type Config struct {
	Classify ClassifyConfig `yaml:"classify"`
	Fit      FitConfig      `yaml:"fit"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
}

// ClassifyConfig overrides classification thresholds.
type ClassifyConfig struct {
	TitleSlideMaxShapes   int     `yaml:"title_slide_max_shapes"`
	MinContentBullets     int     `yaml:"min_content_bullets"`
	TitleTopRatio         float64 `yaml:"title_top_ratio"`
	FooterTopRatio        float64 `yaml:"footer_top_ratio"`
	WideTitleRatio        float64 `yaml:"wide_title_ratio"`
	SidebarLeftRatio      float64 `yaml:"sidebar_left_ratio"`
	MainRightRatio        float64 `yaml:"main_right_ratio"`
	HeaderMaxChars        int     `yaml:"header_max_chars"`
	BulletListMinLines    int     `yaml:"bullet_list_min_lines"`
	LabelMaxWords         int     `yaml:"label_max_words"`
	PairMaxGap            float64 `yaml:"pair_max_gap"`
	PairMaxVerticalOffset float64 `yaml:"pair_max_vertical_offset"`
}

// FitConfig overrides text-fitting parameters.
type FitConfig struct {
	CharDensity      float64 `yaml:"char_density"`
	SafetyMargin     float64 `yaml:"safety_margin"`
	LengthRatioLimit float64 `yaml:"length_ratio_limit"`
	Policy           string  `yaml:"policy"` // "truncate" or "summarize"
}

// OpenAIConfig configures the optional summarizer. The API key is read
// from the OPENAI_API_KEY environment variable, never from the file.
type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// an empty config, so all defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ClassifyOverrides applies the non-zero classify fields on top of the
// library defaults.
func (c *Config) ClassifyOverrides() classify.Config {
	out := classify.DefaultConfig()
	o := c.Classify

	if o.TitleSlideMaxShapes > 0 {
		out.TitleSlideMaxShapes = o.TitleSlideMaxShapes
	}
	if o.MinContentBullets > 0 {
		out.MinContentBullets = o.MinContentBullets
	}
	if o.TitleTopRatio > 0 {
		out.TitleTopRatio = o.TitleTopRatio
	}
	if o.FooterTopRatio > 0 {
		out.FooterTopRatio = o.FooterTopRatio
	}
	if o.WideTitleRatio > 0 {
		out.WideTitleRatio = o.WideTitleRatio
	}
	if o.SidebarLeftRatio > 0 {
		out.SidebarLeftRatio = o.SidebarLeftRatio
	}
	if o.MainRightRatio > 0 {
		out.MainRightRatio = o.MainRightRatio
	}
	if o.HeaderMaxChars > 0 {
		out.HeaderMaxChars = o.HeaderMaxChars
	}
	if o.BulletListMinLines > 0 {
		out.BulletListMinLines = o.BulletListMinLines
	}
	if o.LabelMaxWords > 0 {
		out.LabelMaxWords = o.LabelMaxWords
	}
	if o.PairMaxGap > 0 {
		out.PairMaxGap = o.PairMaxGap
	}
	if o.PairMaxVerticalOffset > 0 {
		out.PairMaxVerticalOffset = o.PairMaxVerticalOffset
	}
	return out
}

// FitOverrides applies the non-zero fit fields on top of the library
// defaults.
func (c *Config) FitOverrides() (fit.Config, error) {
	out := fit.DefaultConfig()
	o := c.Fit

	if o.CharDensity > 0 {
		out.CharDensity = o.CharDensity
	}
	if o.SafetyMargin > 0 {
		out.SafetyMargin = o.SafetyMargin
	}
	if o.LengthRatioLimit > 0 {
		out.LengthRatioLimit = o.LengthRatioLimit
	}
	switch o.Policy {
	case "", "truncate":
		out.Policy = fit.PolicyTruncate
	case "summarize":
		out.Policy = fit.PolicySummarize
	default:
		return out, fmt.Errorf("unknown fit policy %q", o.Policy)
	}
	return out, nil
}

// Summarizer builds the OpenAI summarizer when one is configured and the
// fit policy asks for summarization. Returns nil when not applicable.
func (c *Config) Summarizer() (fit.Summarizer, error) {
	if c.Fit.Policy != "summarize" {
		return nil, nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("fit policy is summarize but OPENAI_API_KEY is not set")
	}
	s, err := fit.NewOpenAISummarizer(c.OpenAI.Model, apiKey, c.OpenAI.BaseURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}
