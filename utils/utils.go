package utils

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	helpers "github.com/Lineblocs/go-helpers"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

var db *sql.DB

const (
	EnvProduction  = "production"
	EnvStaging     = "staging"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// DefaultPeriodTolerance absorbs scheduler jitter around period ends. It
// must stay well below a day so a run never bills a period that has not
// ended yet.
const DefaultPeriodTolerance = time.Hour

const (
	defaultCurrency       = "GBP"
	defaultHTTPAddr       = ":8085"
	defaultPaymentRetries = 2
)

// BillingConfig is the runtime configuration of the billing pipeline.
type BillingConfig struct {
	Environment     string
	Currency        string
	PeriodTolerance time.Duration
	TriggerSecret   string
	HTTPAddr        string
	RendererURL     string
	QueueURL        string
	RedisURL        string

	S3Region         string
	S3Bucket         string
	AWSAccessKeyID   string
	AWSSecretKey     string
	MailgunDomain    string
	MailgunAPIKey    string
	MailgunSender    string
	StripePrivateKey string
	PaymentRetries   int
	DeploymentDomain string
}

func GetDBConnection() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}
	var err error
	db, err = helpers.CreateDBConn()
	if err != nil {
		return nil, err
	}
	return db, nil
}

func Config(key string) string {
	if os.Getenv("USE_DOTENV") != "off" {
		_ = godotenv.Load(".env")
	}
	return os.Getenv(key)
}

func ConfigDefault(key string, fallback string) string {
	value := Config(key)
	if value == "" {
		return fallback
	}
	return value
}

func LoadBillingConfig() *BillingConfig {
	cfg := &BillingConfig{
		Environment:      NormalizeEnvironment(Config("APP_ENV")),
		Currency:         strings.ToUpper(ConfigDefault("BILLING_CURRENCY", defaultCurrency)),
		PeriodTolerance:  ParseDuration(Config("BILLING_PERIOD_TOLERANCE"), DefaultPeriodTolerance),
		TriggerSecret:    Config("BILLING_TRIGGER_SECRET"),
		HTTPAddr:         ConfigDefault("HTTP_ADDR", defaultHTTPAddr),
		RendererURL:      Config("PDF_RENDERER_URL"),
		QueueURL:         Config("QUEUE_URL"),
		RedisURL:         Config("REDIS_URL"),
		S3Region:         Config("AWS_REGION"),
		S3Bucket:         Config("S3_BUCKET"),
		AWSAccessKeyID:   Config("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:     Config("AWS_SECRET_ACCESS_KEY"),
		MailgunDomain:    Config("MAILGUN_DOMAIN"),
		MailgunAPIKey:    Config("MAILGUN_API_KEY"),
		MailgunSender:    ConfigDefault("MAILGUN_SENDER", "billing@mailroom.app"),
		StripePrivateKey: Config("STRIPE_PRIVATE_KEY"),
		PaymentRetries:   ParseInt(Config("PAYMENT_RETRY_ATTEMPTS"), defaultPaymentRetries),
		DeploymentDomain: Config("DEPLOYMENT_DOMAIN"),
	}
	return cfg
}

// MigrationDatabaseURL returns the golang-migrate URL for the billing
// database. MIGRATE_DATABASE_URL wins; otherwise it is assembled from the
// DB_* settings the connection helper reads.
func MigrationDatabaseURL() string {
	if url := Config("MIGRATE_DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true&parseTime=true",
		Config("DB_USER"),
		Config("DB_PASS"),
		ConfigDefault("DB_HOST", "localhost"),
		ConfigDefault("DB_PORT", "3306"),
		Config("DB_NAME"),
	)
}

// Settings exposes the storage credentials in the shape the document
// service expects.
func (c *BillingConfig) Settings() *models.Settings {
	return &models.Settings{
		Credentials: map[string]string{
			"aws_region":            c.S3Region,
			"aws_access_key_id":     c.AWSAccessKeyID,
			"aws_secret_access_key": c.AWSSecretKey,
			"s3_bucket":             c.S3Bucket,
		},
	}
}

// NormalizeEnvironment maps unknown or empty values to production so that
// degraded fallbacks are never enabled by accident.
func NormalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", EnvDevelopment, "local":
		return EnvDevelopment
	case "stage", EnvStaging:
		return EnvStaging
	case EnvTest:
		return EnvTest
	default:
		return EnvProduction
	}
}

func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		helpers.Log(logrus.InfoLevel, fmt.Sprintf("duration is setup incorrectly. value=%s using %s", s, fallback))
		return fallback
	}
	return d
}

func ParseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		helpers.Log(logrus.InfoLevel, fmt.Sprintf("number is setup incorrectly. value=%s using %d", s, fallback))
		return fallback
	}
	return n
}

// FormatPence renders an amount in minor units, e.g. 1234 GBP -> "12.34 GBP".
func FormatPence(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, currency)
}
