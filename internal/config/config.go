package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Redis               Redis               `mapstructure:",squash"`
	Meta                Meta                `mapstructure:",squash"`
	SSOtica             SSOtica             `mapstructure:",squash"`
	Sheets              Sheets              `mapstructure:",squash"`
	Auth                Auth                `mapstructure:",squash"`
	Secrets             Secrets             `mapstructure:",squash"`
	Refresh             Refresh             `mapstructure:",squash"`
	AdInsightsRefresh   AdInsightsRefresh   `mapstructure:",squash"`
	FinanceBatchRefresh FinanceBatchRefresh `mapstructure:",squash"`
	PodSheetRefresh     PodSheetRefresh     `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"-"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

type SSOtica struct {
	URL            string        `mapstructure:"ssotica_url"`
	RequestTimeout time.Duration `mapstructure:"ssotica_request_timeout"`
}

type Sheets struct {
	BaseURL         string `mapstructure:"sheets_base_url"`
	CredentialsJSON string `mapstructure:"sheets_credentials_json"`
	CredentialsFile string `mapstructure:"sheets_credentials_file"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Secrets struct {
	EncryptionKey string `mapstructure:"secrets_encryption_key"`
}

type Refresh struct {
	BatchSize         int           `mapstructure:"refresh_batch_size"`
	MaxConcurrentJobs int           `mapstructure:"refresh_max_concurrent_jobs"`
	LockTTL           time.Duration `mapstructure:"refresh_lock_ttl"`
	HistoryLimit      int           `mapstructure:"refresh_history_limit"`
	SignaturesFile    string        `mapstructure:"refresh_signatures_file"`
}

type AdInsightsRefresh struct {
	CronSchedule string `mapstructure:"ad_insights_refresh_cron"`
	ScopeID      string `mapstructure:"ad_insights_refresh_scope"`
	DatePreset   string `mapstructure:"ad_insights_refresh_date_preset"`
	SheetID      string `mapstructure:"ad_insights_refresh_sheet_id"`
	SheetRange   string `mapstructure:"ad_insights_refresh_sheet_range"`
	Enabled      bool   `mapstructure:"ad_insights_refresh_enabled"`
}

type FinanceBatchRefresh struct {
	CronSchedule string `mapstructure:"finance_batch_refresh_cron"`
	ScopeID      string `mapstructure:"finance_batch_refresh_scope"`
	DatePreset   string `mapstructure:"finance_batch_refresh_date_preset"`
	SheetID      string `mapstructure:"finance_batch_refresh_sheet_id"`
	SheetRange   string `mapstructure:"finance_batch_refresh_sheet_range"`
	Enabled      bool   `mapstructure:"finance_batch_refresh_enabled"`
}

type PodSheetRefresh struct {
	CronSchedule string `mapstructure:"pod_sheet_refresh_cron"`
	ScopeID      string `mapstructure:"pod_sheet_refresh_scope"`
	DatePreset   string `mapstructure:"pod_sheet_refresh_date_preset"`
	SheetID      string `mapstructure:"pod_sheet_refresh_sheet_id"`
	SheetRange   string `mapstructure:"pod_sheet_refresh_sheet_range"`
	Enabled      bool   `mapstructure:"pod_sheet_refresh_enabled"`
}

// RefreshJob é a visão comum das três seções de agendamento.
type RefreshJob struct {
	CronSchedule string
	ScopeID      string
	DatePreset   string
	SheetID      string
	SheetRange   string
	Enabled      bool
}

// RefreshJobs devolve as configurações indexadas pelo tipo de atualização.
func (c *Config) RefreshJobs() map[string]RefreshJob {
	return map[string]RefreshJob{
		"ad_insights":   RefreshJob(c.AdInsightsRefresh),
		"finance_batch": RefreshJob(c.FinanceBatchRefresh),
		"pod_sheet":     RefreshJob(c.PodSheetRefresh),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "" || c.App.Env == "development"
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/portfolio?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10) // um lote usa até REFRESH_MAX_CONCURRENT_JOBS conexões
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("SSOTICA_URL", "https://app.ssotica.com.br/api/v1")
	viper.SetDefault("SSOTICA_REQUEST_TIMEOUT", "45s")

	viper.SetDefault("SHEETS_BASE_URL", "https://sheets.googleapis.com")
	viper.SetDefault("SHEETS_CREDENTIALS_JSON", "")
	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("SECRETS_ENCRYPTION_KEY", "")

	viper.SetDefault("REFRESH_BATCH_SIZE", 75)         // contas por lote nas atualizações pesadas
	viper.SetDefault("REFRESH_MAX_CONCURRENT_JOBS", 5) // chamadas externas simultâneas
	viper.SetDefault("REFRESH_LOCK_TTL", "30m")
	viper.SetDefault("REFRESH_HISTORY_LIMIT", 30)
	viper.SetDefault("REFRESH_SIGNATURES_FILE", "")

	viper.SetDefault("AD_INSIGHTS_REFRESH_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("AD_INSIGHTS_REFRESH_SCOPE", "all")
	viper.SetDefault("AD_INSIGHTS_REFRESH_DATE_PRESET", "yesterday")
	viper.SetDefault("AD_INSIGHTS_REFRESH_SHEET_ID", "")
	viper.SetDefault("AD_INSIGHTS_REFRESH_SHEET_RANGE", "Insights!A1")
	viper.SetDefault("AD_INSIGHTS_REFRESH_ENABLED", false)

	viper.SetDefault("FINANCE_BATCH_REFRESH_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("FINANCE_BATCH_REFRESH_SCOPE", "all")
	viper.SetDefault("FINANCE_BATCH_REFRESH_DATE_PRESET", "this_month")
	viper.SetDefault("FINANCE_BATCH_REFRESH_SHEET_ID", "")
	viper.SetDefault("FINANCE_BATCH_REFRESH_SHEET_RANGE", "Financeiro!A1")
	viper.SetDefault("FINANCE_BATCH_REFRESH_ENABLED", false)

	viper.SetDefault("POD_SHEET_REFRESH_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("POD_SHEET_REFRESH_SCOPE", "all")
	viper.SetDefault("POD_SHEET_REFRESH_DATE_PRESET", "last_7d")
	viper.SetDefault("POD_SHEET_REFRESH_SHEET_ID", "")
	viper.SetDefault("POD_SHEET_REFRESH_SHEET_RANGE", "Pods!A1")
	viper.SetDefault("POD_SHEET_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate corrige limites inválidos e recusa o que não tem correção.
func (c *Config) Validate() error {
	if c.Refresh.BatchSize < 0 {
		return fmt.Errorf("REFRESH_BATCH_SIZE inválido: %d", c.Refresh.BatchSize)
	}
	if c.Refresh.MaxConcurrentJobs <= 0 {
		c.Refresh.MaxConcurrentJobs = 1
	}
	if c.Refresh.HistoryLimit <= 0 {
		c.Refresh.HistoryLimit = 30
	}
	if c.Refresh.LockTTL <= 0 {
		c.Refresh.LockTTL = 30 * time.Minute
	}
	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
