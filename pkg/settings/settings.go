// Package settings loads application settings: listen address, mail
// domains and the table of provisioning form variants.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"adprov/pkg/logger"
	"adprov/pkg/schema"
)

// EnvPrefix prefixes every environment override, e.g. ADPROV_SERVER_ADDR.
const EnvPrefix = "ADPROV"

// Variant describes one provisioning form. The forms differ only in these
// parameters; derivation and formatting code is shared.
type Variant struct {
	Name            string   `mapstructure:"name" json:"name"`
	Title           string   `mapstructure:"title" json:"title"`
	Sheet           string   `mapstructure:"sheet" json:"sheet"`
	External        bool     `mapstructure:"external" json:"external"`
	OUKey           string   `mapstructure:"ou_key" json:"ouKey"`
	GroupApp        string   `mapstructure:"group_app" json:"groupApp"`
	ExtraGroupKeys  []string `mapstructure:"extra_group_keys" json:"extraGroupKeys"`
	CompanyKey      string   `mapstructure:"company_key" json:"companyKey"`
	UsageType       string   `mapstructure:"usage_type" json:"usageType"`
	FileSuffix      string   `mapstructure:"file_suffix" json:"fileSuffix"`
	QuoteColumns    []string `mapstructure:"quote_columns" json:"quoteColumns"`
	ComputerRecord  bool     `mapstructure:"computer_record" json:"computerRecord"`
	ProfilingRecord bool     `mapstructure:"profiling_record" json:"profilingRecord"`
	RequireExpiry   bool     `mapstructure:"require_expiry" json:"requireExpiry"`
}

// Config holds the application settings.
type Config struct {
	ServerAddr    string    `mapstructure:"server_addr" json:"serverAddr"`
	BodyLimitMB   int       `mapstructure:"body_limit_mb" json:"bodyLimitMb"`
	MailDomain    string    `mapstructure:"mail_domain" json:"mailDomain"`
	SecondaryMail string    `mapstructure:"secondary_mail_domain" json:"secondaryMailDomain"`
	NotifyAddress string    `mapstructure:"notify_address" json:"notifyAddress"`
	PhonePrefix   string    `mapstructure:"phone_prefix" json:"phonePrefix"`
	OutputDir     string    `mapstructure:"output_dir" json:"outputDir"`
	Variants      []Variant `mapstructure:"variants" json:"variants"`
}

// Variant returns the variant called name.
func (c Config) Variant(name string) (Variant, bool) {
	for _, v := range c.Variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariants is the table used when the settings file has none.
func DefaultVariants() []Variant {
	return []Variant{
		{
			Name:         "interna",
			Title:        "Nuova Risorsa Interna",
			Sheet:        "Risorsa Interna",
			OUKey:        "ou_default",
			GroupApp:     "interna",
			CompanyKey:   "company_interna",
			UsageType:    "Remota",
			FileSuffix:   "interno",
			QuoteColumns: []string{schema.ColOU},
		},
		{
			Name:            "somministrato",
			Title:           "Nuova Risorsa Esterna Somministrato",
			Sheet:           "Somministrato",
			External:        true,
			OUKey:           "ou_esterna_stage",
			GroupApp:        "esterna_stage",
			CompanyKey:      "company_default",
			UsageType:       "Esterna",
			FileSuffix:      "esterno",
			QuoteColumns:    []string{schema.ColOU, schema.ColName, schema.ColDisplayName, schema.ColCommonName, schema.ColExpireDate, schema.ColMobile},
			ComputerRecord:  true,
			ProfilingRecord: true,
			RequireExpiry:   true,
		},
		{
			Name:           "stage",
			Title:          "Nuova Risorsa Stage",
			Sheet:          "Stage",
			External:       true,
			OUKey:          "ou_esterna_stage",
			GroupApp:       "esterna_stage",
			CompanyKey:     "company_default",
			UsageType:      "Stage",
			FileSuffix:     "stage",
			QuoteColumns:   []string{schema.ColOU, schema.ColName, schema.ColDisplayName, schema.ColCommonName, schema.ColExpireDate},
			ComputerRecord: true,
			RequireExpiry:  true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("body_limit_mb", 10)
	v.SetDefault("mail_domain", "consip.it")
	v.SetDefault("secondary_mail_domain", "consipspa.mail.onmicrosoft.com")
	v.SetDefault("notify_address", "imac@consip.it")
	v.SetDefault("phone_prefix", "+39")
	v.SetDefault("output_dir", ".")
}

// InitConfig loads settings from path (optional, any format viper reads)
// and ADPROV_* environment variables.
func InitConfig(path string) (Config, error) {
	log := logger.New("settings").Function("InitConfig")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, log.Err("failed to read settings file", err, "path", path)
		}
		log.Info("settings file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, log.Err("failed to decode settings", err)
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = DefaultVariants()
	}
	if err := cfg.validate(); err != nil {
		return Config{}, log.Err("invalid settings", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MailDomain == "" {
		return errors.New("mail_domain is required")
	}
	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("variant %d has no name", i)
		}
		key := strings.ToLower(v.Name)
		if seen[key] {
			return fmt.Errorf("variant %q defined twice", v.Name)
		}
		seen[key] = true
		if v.Sheet == "" {
			return fmt.Errorf("variant %q has no sheet", v.Name)
		}
	}
	return nil
}
