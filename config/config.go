package config

import (
	"github.com/spf13/viper"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

type Config struct {
	Database struct {
		URL string
	}
	Server struct {
		Port int
	}
	Journal struct {
		Owner     string
		Price     uint64
		Editors   []string
		Authors   []string
		Reviewers []string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.url", "journal.db")
	// 0.0038 native units at 10^18 precision, the price observed at
	// deployment. Immutable once the genesis event is written.
	viper.SetDefault("journal.price", uint64(3800000000000000))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InitialEditors returns the genesis editor list as identities.
func (c *Config) InitialEditors() []models.Identity {
	return toIdentities(c.Journal.Editors)
}

// InitialAuthors returns the genesis author list as identities.
func (c *Config) InitialAuthors() []models.Identity {
	return toIdentities(c.Journal.Authors)
}

// InitialReviewers returns the genesis reviewer list as identities.
func (c *Config) InitialReviewers() []models.Identity {
	return toIdentities(c.Journal.Reviewers)
}

func toIdentities(ids []string) []models.Identity {
	out := make([]models.Identity, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Identity(id))
	}
	return out
}
