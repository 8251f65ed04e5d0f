// config реализует конфигурацию matchmaking-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Locale   string         `yaml:"locale" env:"LOCALE" env-default:"en"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	CORS     CORSConfig     `yaml:"cors"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Limits   LimitsConfig   `yaml:"limits"`
	Matching MatchingConfig `yaml:"matching"`
	Currency CurrencyConfig `yaml:"currency"`
	Fixtures FixturesConfig `yaml:"fixtures"`
}

// TimeoutConfig — общий дедлайн обработки запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — публичный REST API.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50070"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig — отдельный HTTP для Prometheus и health-проб.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50075"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// CORSConfig — источники, которым разрешено обращаться к API из браузера.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// LimitsConfig — размеры страниц для списков.
type LimitsConfig struct {
	// page_size=0 -> DefaultPageSize; больше MaxPageSize — ошибка валидации.
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int `yaml:"max_page_size"     env:"MAX_PAGE_SIZE"     env-default:"100"`
}

// MatchingConfig — параметры генерации «сильных сторон» пары для текста знакомства.
type MatchingConfig struct {
	StrongThreshold int `yaml:"strong_threshold" env:"STRONG_THRESHOLD" env-default:"85"`
	MaxHighlights   int `yaml:"max_highlights"   env:"MAX_HIGHLIGHTS"   env-default:"3"`
}

// CurrencyConfig — таблица пересчёта валют в базовую для агрегатов по платежам.
// Rates задаются строками, чтобы не терять точность: "BDT:1,USD:110,GBP:140".
type CurrencyConfig struct {
	Base  string            `yaml:"base"  env:"CURRENCY_BASE"  env-default:"BDT"`
	Rates map[string]string `yaml:"rates" env:"CURRENCY_RATES" env-default:"BDT:1,USD:110,GBP:140"`
}

// FixturesConfig — источник начальных данных in-memory хранилища.
// Пустой Path -> встроенный набор фикстур.
type FixturesConfig struct {
	Path string `yaml:"path" env:"FIXTURES_PATH"`
}

// DecimalRates разбирает таблицу курсов. Ключи приводятся к верхнему регистру.
func (c CurrencyConfig) DecimalRates() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(c.Rates))

	for code, raw := range c.Rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("currency.rates[%s]: %w", code, err)
		}

		if !rate.IsPositive() {
			return nil, fmt.Errorf("currency.rates[%s] must be > 0", code)
		}

		out[code] = rate
	}

	return out, nil
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	read := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch {
	case path != "":
		c, err = read(path)
	case os.Getenv("CONFIG_PATH") != "":
		c, err = read(os.Getenv("CONFIG_PATH"))
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = read("local.yaml")
			break
		}

		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Limits.DefaultPageSize <= 0 {
		return fmt.Errorf("limits.default_page_size must be > 0")
	}

	if c.Limits.MaxPageSize <= 0 {
		return fmt.Errorf("limits.max_page_size must be > 0")
	}

	if c.Limits.DefaultPageSize > c.Limits.MaxPageSize {
		return fmt.Errorf("limits.default_page_size must be <= limits.max_page_size")
	}

	if c.Matching.StrongThreshold < 0 || c.Matching.StrongThreshold > 100 {
		return fmt.Errorf("matching.strong_threshold must be within [0, 100]")
	}

	if c.Matching.MaxHighlights <= 0 {
		return fmt.Errorf("matching.max_highlights must be > 0")
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}

	c.Currency.Base = strings.ToUpper(strings.TrimSpace(c.Currency.Base))
	if c.Currency.Base == "" {
		return fmt.Errorf("currency.base is required")
	}

	rates, err := c.Currency.DecimalRates()
	if err != nil {
		return err
	}

	base, ok := rates[c.Currency.Base]
	if !ok {
		return fmt.Errorf("currency.rates must contain base currency %s", c.Currency.Base)
	}

	if !base.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("currency.rates[%s] must be 1", c.Currency.Base)
	}

	return nil
}
