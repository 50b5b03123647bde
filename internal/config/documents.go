package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DocumentConfig holds document defaults that the back office tunes
// without a redeploy: numbering templates and commercial terms.
type DocumentConfig struct {
	Numbering         NumberingConfig `mapstructure:"numbering"`
	QuoteValidityDays int             `mapstructure:"quoteValidityDays"`
	InvoiceDueDays    int             `mapstructure:"invoiceDueDays"`
	Currency          string          `mapstructure:"currency"`
}

// NumberingConfig maps each document kind to its number template.
// Templates use {YYYY}/{YY}/{MM}/{DD} date tokens and {SEQ}/{SEQn}
// sequence tokens.
type NumberingConfig struct {
	Quote         string `mapstructure:"quote"`
	Invoice       string `mapstructure:"invoice"`
	PurchaseOrder string `mapstructure:"purchaseOrder"`
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Numbering: NumberingConfig{
			Quote:         "PRE-{YYYY}-{SEQ4}",
			Invoice:       "FAC-{YYYY}-{SEQ4}",
			PurchaseOrder: "PED-{YYYY}-{SEQ4}",
		},
		QuoteValidityDays: 30,
		InvoiceDueDays:    30,
		Currency:          "EUR",
	}
}

// DocumentConfigHolder serves the current DocumentConfig and hot-reloads
// it when the file changes.
type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
}

func NewDocumentConfigHolder() (*DocumentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("documents")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/nexoav/config")
	v.AddConfigPath("/etc/nexoav")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NEXOAV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDocumentConfig()
	v.SetDefault("documents.numbering.quote", defaults.Numbering.Quote)
	v.SetDefault("documents.numbering.invoice", defaults.Numbering.Invoice)
	v.SetDefault("documents.numbering.purchaseOrder", defaults.Numbering.PurchaseOrder)
	v.SetDefault("documents.quoteValidityDays", defaults.QuoteValidityDays)
	v.SetDefault("documents.invoiceDueDays", defaults.InvoiceDueDays)
	v.SetDefault("documents.currency", defaults.Currency)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg DocumentConfig
	if err := v.UnmarshalKey("documents", &cfg); err != nil {
		return nil, err
	}
	if err := validateDocumentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DocumentConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DocumentConfig
		if err := v.UnmarshalKey("documents", &updated); err != nil {
			log.Printf("[document-config] reload failed: %v", err)
			return
		}
		if err := validateDocumentConfig(updated); err != nil {
			log.Printf("[document-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[document-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DocumentConfigHolder) Get() DocumentConfig {
	return h.current.Load().(DocumentConfig)
}

func validateDocumentConfig(cfg DocumentConfig) error {
	if strings.TrimSpace(cfg.Numbering.Quote) == "" ||
		strings.TrimSpace(cfg.Numbering.Invoice) == "" ||
		strings.TrimSpace(cfg.Numbering.PurchaseOrder) == "" {
		return errors.New("documents.numbering templates cannot be empty")
	}
	if cfg.QuoteValidityDays < 0 || cfg.InvoiceDueDays < 0 {
		return errors.New("documents validity/due days cannot be negative")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("documents.currency cannot be empty")
	}
	return nil
}
