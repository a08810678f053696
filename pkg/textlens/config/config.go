package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// EnvPrefix prefixes every environment override, e.g. TEXTLENS_FREQUENCY_TOP_N.
const EnvPrefix = "TEXTLENS"

// Tokenizer kinds.
const (
	TokenizerJieba = "jieba"
	TokenizerRune  = "rune"
)

// Scorer kinds.
const (
	ScorerLexicon = "lexicon"
	ScorerLLM     = "llm"
)

// Config is the full runtime configuration.
type Config struct {
	Font      string          `mapstructure:"font"`
	DPI       int             `mapstructure:"dpi"`
	HistoryDB string          `mapstructure:"history_db"`
	Frequency FrequencyConfig `mapstructure:"frequency"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Jieba     JiebaConfig     `mapstructure:"jieba"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Log       LogConfig       `mapstructure:"log"`
}

// FrequencyConfig configures the word frequency pipeline.
type FrequencyConfig struct {
	Source         string `mapstructure:"source"`
	Stopwords      string `mapstructure:"stopwords"`
	Tokenizer      string `mapstructure:"tokenizer"`
	Stem           bool   `mapstructure:"stem"`
	TopN           int    `mapstructure:"top_n"`
	Report         string `mapstructure:"report"`
	AppendToSource bool   `mapstructure:"append_to_source"`
	Image          string `mapstructure:"image"`
}

// SentimentConfig configures the sentiment pipeline.
type SentimentConfig struct {
	Source  string `mapstructure:"source"`
	Scorer  string `mapstructure:"scorer"`
	Lexicon string `mapstructure:"lexicon"` // empty uses the built-in lexicon
	Bar     string `mapstructure:"bar"`
	Pie     string `mapstructure:"pie"`
}

// JiebaConfig overrides the dictionaries bundled with gojieba.
type JiebaConfig struct {
	Dict     string `mapstructure:"dict"`
	HMM      string `mapstructure:"hmm"`
	UserDict string `mapstructure:"user_dict"`
	IDF      string `mapstructure:"idf"`
	StopWord string `mapstructure:"stop_word"`
}

// LLMConfig points the llm scorer at an OpenAI-compatible endpoint.
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("font", "simhei.ttf")
	v.SetDefault("dpi", 300)
	v.SetDefault("history_db", "")

	v.SetDefault("frequency.source", "北京野生动物园.txt")
	v.SetDefault("frequency.stopwords", "stopwords.txt")
	v.SetDefault("frequency.tokenizer", TokenizerJieba)
	v.SetDefault("frequency.stem", false)
	v.SetDefault("frequency.top_n", 20)
	v.SetDefault("frequency.report", "北京野生动物园.top.txt")
	v.SetDefault("frequency.append_to_source", false)
	v.SetDefault("frequency.image", "北京野生动物园.png")

	v.SetDefault("sentiment.source", "鸟巢.txt")
	v.SetDefault("sentiment.scorer", ScorerLexicon)
	v.SetDefault("sentiment.lexicon", "")
	v.SetDefault("sentiment.bar", "鸟巢评论情感趋势.png")
	v.SetDefault("sentiment.pie", "鸟巢评论情感分布.png")

	v.SetDefault("jieba.dict", "")
	v.SetDefault("jieba.hmm", "")
	v.SetDefault("jieba.user_dict", "")
	v.SetDefault("jieba.idf", "")
	v.SetDefault("jieba.stop_word", "")

	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper returns a viper instance with defaults and environment
// overrides registered. Nested keys map to variables with dots replaced by
// underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the
// result. Flags bound to v before the call take precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with no file, flags or environment.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: decode defaults: %v", err))
	}
	return cfg
}

// Validate checks values that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	var errs []error
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	if c.Frequency.TopN <= 0 {
		errs = append(errs, fmt.Errorf("frequency.top_n must be positive, got %d", c.Frequency.TopN))
	}
	switch c.Frequency.Tokenizer {
	case TokenizerJieba, TokenizerRune:
	default:
		errs = append(errs, fmt.Errorf("unknown frequency.tokenizer %q", c.Frequency.Tokenizer))
	}
	switch c.Sentiment.Scorer {
	case ScorerLexicon:
	case ScorerLLM:
		if c.LLM.BaseURL == "" || c.LLM.Model == "" {
			errs = append(errs, errors.New("llm scorer needs llm.base_url and llm.model"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sentiment.scorer %q", c.Sentiment.Scorer))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
