// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr                string   `env:"BIND_ADDR"                 flag:"bind-addr"                 flagDesc:"Bind address"`
	Collection              string   `env:"MONGODB_COLLECTION"        flag:"mongodb-collection"        flagDesc:"MongoDB collection for refund request data"`
	Database                string   `env:"MONGODB_DATABASE"          flag:"mongodb-database"          flagDesc:"MongoDB database for refund request data"`
	MongoDBURL              string   `env:"MONGODB_URL"               flag:"mongodb-url"               flagDesc:"MongoDB server URL"`
	SalonAPIURL             string   `env:"SALON_API_URL"             flag:"salon-api-url"             flagDesc:"Base URL for the Salon Directory API"`
	SalonAPIKey             string   `env:"SALON_API_KEY"             flag:"salon-api-key"             flagDesc:"Bearer token used to authenticate calls to the Salon Directory API"`
	RefundsWebURL           string   `env:"REFUNDS_WEB_URL"           flag:"refunds-web-url"           flagDesc:"Base URL for the refunds web application, used in verification links"`
	PaypalEnv               string   `env:"PAYPAL_ENV"                flag:"paypal-env"                flagDesc:"PayPal environment, live or test"`
	PaypalClientID          string   `env:"PAYPAL_CLIENT_ID"          flag:"paypal-client-id"          flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PaypalSecret            string   `env:"PAYPAL_SECRET"             flag:"paypal-secret"             flagDesc:"Secret used to authenticate API calls with PayPal"`
	SMTPHost                string   `env:"SMTP_HOST"                 flag:"smtp-host"                 flagDesc:"SMTP server host used to send lifecycle emails"`
	SMTPPort                int      `env:"SMTP_PORT"                 flag:"smtp-port"                 flagDesc:"SMTP server port"`
	SMTPUsername            string   `env:"SMTP_USERNAME"             flag:"smtp-username"             flagDesc:"SMTP username"`
	SMTPPassword            string   `env:"SMTP_PASSWORD"             flag:"smtp-password"             flagDesc:"SMTP password"`
	SMTPFrom                string   `env:"SMTP_FROM"                 flag:"smtp-from"                 flagDesc:"From address for lifecycle emails"`
	VerificationTokenSecret string   `env:"VERIFICATION_TOKEN_SECRET" flag:"verification-token-secret" flagDesc:"Secret used to sign refund request verification tokens"`
	BrokerAddr              []string `env:"KAFKA_BROKER_ADDR"         flag:"broker-addr"               flagDesc:"Kafka broker address"`
	SchemaRegistryURL       string   `env:"SCHEMA_REGISTRY_URL"       flag:"schema-registry-url"       flagDesc:"Schema registry URL"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		Database:   "refunds",
		Collection: "refund_requests",
		SMTPPort:   587,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
