// Package config provides the structures and loader for the service configuration.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration of the Kaulela backend.
//
// All secrets (merchant key, passphrase, JWT secret, SaaS credentials) are
// supplied here and never embedded in code.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	AmqpConnectionString    string `yaml:"amqp_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	PayFast                 `yaml:"payfast"`
	SMS                     `yaml:"sms"`
	QuickBooks              `yaml:"quickbooks"`
	SearchWorks             `yaml:"searchworks"`
	Reconciler              `yaml:"reconciler"`
}

// HTTPServer holds the HTTP server settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the redis connection settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// JWTToken holds the JWT signing settings.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// PayFast holds the payment gateway settings.
//
// Sandbox selects the test endpoint; it must be set to false explicitly for
// production, and production requires both MerchantID and MerchantKey.
type PayFast struct {
	MerchantID         string        `yaml:"merchant_id"`
	MerchantKey        string        `yaml:"merchant_key"`
	Passphrase         string        `yaml:"passphrase"`
	ReturnURL          string        `yaml:"return_url"`
	CancelURL          string        `yaml:"cancel_url"`
	NotifyURL          string        `yaml:"notify_url"`
	Sandbox            bool          `yaml:"sandbox" env-default:"true"`
	ValidateITN        bool          `yaml:"validate_itn" env-default:"true"`
	ValidateTimeout    time.Duration `yaml:"validate_timeout" env-default:"10s"`
	SubscriptionAmount string        `yaml:"subscription_amount" env-default:"450.00"`
	ItemName           string        `yaml:"item_name" env-default:"Kaulela System Monthly Subscription"`
}

// SMS holds the SMS gateway settings.
type SMS struct {
	APIURL     string `yaml:"api_url"`
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

// QuickBooks holds the accounting API settings.
type QuickBooks struct {
	BaseURL     string `yaml:"base_url"`
	RealmID     string `yaml:"realm_id"`
	BearerToken string `yaml:"bearer_token"`
}

// SearchWorks holds the company-registry lookup settings.
type SearchWorks struct {
	APIURL   string        `yaml:"api_url"`
	APIKey   string        `yaml:"api_key"`
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"24h"`
}

// Reconciler holds the settings of the pending-account sweep worker.
type Reconciler struct {
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1h"`
	PendingMaxAge time.Duration `yaml:"pending_max_age" env-default:"48h"`
}

// MustLoad loads the configuration from the file named by CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if err := cfg.PayFast.Validate(); err != nil {
		log.Fatalf("invalid payfast config: %s", err)
	}
	return &cfg
}

// Validate rejects production mode without full merchant credentials.
// Sandbox runs with the public test credentials when none are supplied.
func (p PayFast) Validate() error {
	if !p.Sandbox && (p.MerchantID == "" || p.MerchantKey == "") {
		return fmt.Errorf("production mode requires merchant_id and merchant_key")
	}
	return nil
}
