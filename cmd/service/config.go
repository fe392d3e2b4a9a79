package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/coffee-backend/db"
	"github.com/vocdoni/coffee-backend/validator"
)

const (
	defaultMongoHost   = "cluster0.djg6r.mongodb.net"
	defaultMongoScheme = "mongodb+srv"
	// atlasQuery is appended to the composed MongoDB URI
	atlasQuery = "retryWrites=true&w=majority&appName=Cluster0"
)

// config holds the service configuration, read from flags, environment
// variables and an optional .env file.
type config struct {
	Host        string `validate:"required"`
	Port        int    `validate:"min=1,max=65535"`
	DBUser      string `validate:"required"`
	DBPassword  string `validate:"required"`
	MongoHost   string `validate:"required"`
	MongoScheme string `validate:"mongoscheme"`
	MongoURL    string `validate:"omitempty,url"`
	MongoDB     string `validate:"required"`
	StableAPI   bool
	ServerURL   string `validate:"omitempty,url"`
	LogLevel    string `validate:"oneof=debug info warn error"`
}

// newFlagSet defines the service flags.
func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("coffee-backend", flag.ContinueOnError)
	fs.String("host", "0.0.0.0", "listen address")
	fs.IntP("port", "p", 5000, "listen port")
	fs.String("db-user", "", "MongoDB user (required)")
	fs.String("db-password", "", "MongoDB password (required)")
	fs.String("mongo-host", defaultMongoHost, "MongoDB host, used when no mongo-url is provided")
	fs.String("mongo-scheme", defaultMongoScheme, "MongoDB URI scheme, mongodb or mongodb+srv")
	fs.String("mongo-url", "", "full MongoDB URL, overrides mongo-host and mongo-scheme")
	fs.String("mongo-db", db.DefaultDatabase, "the name of the MongoDB database")
	fs.Bool("mongo-stable-api", true, "use the MongoDB Stable API v1")
	fs.String("server-url", "http://localhost:5000", "public URL of the server, used to build object URLs")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	return fs
}

// loadDotEnv exports the variables defined in the dotenv file at path that
// are not already set in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig parses the arguments into the flag set and reads the resulting
// configuration through v. Environment variables override the flag defaults
// using the flag name in upper case with dashes replaced by underscores
// (e.g. DB_USER).
func loadConfig(fs *flag.FlagSet, v *viper.Viper, args []string) (*config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	conf := &config{
		Host:        v.GetString("host"),
		Port:        v.GetInt("port"),
		DBUser:      v.GetString("db-user"),
		DBPassword:  v.GetString("db-password"),
		MongoHost:   v.GetString("mongo-host"),
		MongoScheme: v.GetString("mongo-scheme"),
		MongoURL:    v.GetString("mongo-url"),
		MongoDB:     v.GetString("mongo-db"),
		StableAPI:   v.GetBool("mongo-stable-api"),
		ServerURL:   v.GetString("server-url"),
		LogLevel:    v.GetString("log-level"),
	}
	if err := validator.New().Validate(conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return conf, nil
}

// mongoURI returns the MongoDB connection URI with the configured
// credentials. If a full URL is configured, its credentials are replaced.
func (c *config) mongoURI() (string, error) {
	u := &url.URL{
		Scheme:   c.MongoScheme,
		Host:     c.MongoHost,
		Path:     "/",
		RawQuery: atlasQuery,
	}
	if c.MongoURL != "" {
		var err error
		if u, err = url.Parse(c.MongoURL); err != nil {
			return "", fmt.Errorf("invalid mongo URL: %w", err)
		}
	}
	u.User = url.UserPassword(c.DBUser, c.DBPassword)
	return u.String(), nil
}
