package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// FlagValues is filled by the command-line parser. Call Config once flags
// have been parsed to obtain the flag layer of the configuration.
type FlagValues struct {
	serverAddress  NetAddress
	databaseDSN    string
	jsonConfigPath string
	envFilePath    string
	env            string
	tokenSignKey   string
	publicURL      string
	redisAddr      string
	amqpURL        string
}

// BindFlags registers all configuration flags on fs.
//
// Flags:
//
//	-a/--address    server address in format [host]:[port]
//	-d/--database   database DSN
//	-c/--config     json file path with configs
//	--env-file      .env file path
//	--env           development or production
//	--token-sign-key token signing key
//	--public-url    externally visible base URL
//	--redis-addr    redis address of the aggregate cache
//	--amqp-url      RabbitMQ URL of the mail queue
func BindFlags(fs *pflag.FlagSet) *FlagValues {
	v := &FlagValues{}

	fs.VarP(&v.serverAddress, "address", "a", "Net address host:port")
	fs.StringVarP(&v.databaseDSN, "database", "d", "", "Database DSN")
	fs.StringVarP(&v.jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&v.envFilePath, "env-file", "", ".env file path")
	fs.StringVar(&v.env, "env", "", "Environment: development or production")
	fs.StringVar(&v.tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&v.publicURL, "public-url", "", "Public base URL")
	fs.StringVar(&v.redisAddr, "redis-addr", "", "Redis address host:port")
	fs.StringVar(&v.amqpURL, "amqp-url", "", "RabbitMQ URL")

	return v
}

// Config returns the configuration layer described by the parsed flags.
func (v *FlagValues) Config() *StructuredConfig {
	if v == nil {
		return nil
	}

	return &StructuredConfig{
		App: App{
			Env:          v.env,
			TokenSignKey: v.tokenSignKey,
			PublicURL:    v.publicURL,
		},
		Storage: Storage{
			DB:    DB{DSN: v.databaseDSN},
			Cache: Cache{RedisAddr: v.redisAddr},
		},
		Server: Server{
			HTTPAddress: v.serverAddress.String(),
		},
		Adapter: Adapter{
			Mailer: Mailer{AMQPURL: v.amqpURL},
		},
		JSONFilePath: v.jsonConfigPath,
		EnvFilePath:  v.envFilePath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "address"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is empty or
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
