package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Env              string   `json:"env"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		CookieDuration   Duration `json:"cookie_duration"`
		BcryptCost       int      `json:"bcrypt_cost"`
		ResetTokenTTL    Duration `json:"reset_token_ttl"`
		PublicURL        string   `json:"public_url"`
		StrictPagination bool     `json:"strict_pagination"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			RedisAddr     string   `json:"redis_addr"`
			RedisPassword string   `json:"redis_password"`
			RedisDB       int      `json:"redis_db"`
			TTL           Duration `json:"ttl"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		MaxBodyBytes    int64    `json:"max_body_bytes"`
	} `json:"server,omitempty"`

	Adapter struct {
		Payment struct {
			BaseURL   string   `json:"base_url"`
			SecretKey string   `json:"secret_key"`
			Currency  string   `json:"currency"`
			Timeout   Duration `json:"timeout"`
		} `json:"payment,omitempty"`

		Mailer struct {
			AMQPURL string `json:"amqp_url"`
			Queue   string `json:"queue"`
			From    string `json:"from"`
		} `json:"mailer,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		RatingsReconcileInterval Duration `json:"ratings_reconcile_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:              jsonCfg.App.Env,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			CookieDuration:   time.Duration(jsonCfg.App.CookieDuration),
			BcryptCost:       jsonCfg.App.BcryptCost,
			ResetTokenTTL:    time.Duration(jsonCfg.App.ResetTokenTTL),
			PublicURL:        jsonCfg.App.PublicURL,
			StrictPagination: jsonCfg.App.StrictPagination,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				RedisAddr:     jsonCfg.Storage.Cache.RedisAddr,
				RedisPassword: jsonCfg.Storage.Cache.RedisPassword,
				RedisDB:       jsonCfg.Storage.Cache.RedisDB,
				TTL:           time.Duration(jsonCfg.Storage.Cache.TTL),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			MaxBodyBytes:    jsonCfg.Server.MaxBodyBytes,
		},
		Adapter: Adapter{
			Payment: Payment{
				BaseURL:   jsonCfg.Adapter.Payment.BaseURL,
				SecretKey: jsonCfg.Adapter.Payment.SecretKey,
				Currency:  jsonCfg.Adapter.Payment.Currency,
				Timeout:   time.Duration(jsonCfg.Adapter.Payment.Timeout),
			},
			Mailer: Mailer{
				AMQPURL: jsonCfg.Adapter.Mailer.AMQPURL,
				Queue:   jsonCfg.Adapter.Mailer.Queue,
				From:    jsonCfg.Adapter.Mailer.From,
			},
		},
		Workers: Workers{
			RatingsReconcileInterval: time.Duration(jsonCfg.Workers.RatingsReconcileInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
