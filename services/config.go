package services

import (
	"log/slog"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	ML       MLConfig
	Media    MediaConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL          string
	Seed         bool
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type AIConfig struct {
	GeminiAPIKey string
}

// MLConfig points at the training dataset resources. Both CSVs are read-only
// inputs; a missing question set is fatal at startup.
type MLConfig struct {
	QuestionSetPath string
	CommentDataPath string
}

// MediaConfig holds the directory assembled feedback documents are written to.
type MediaConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables and config files
func LoadConfig() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.seed", "true")
	viper.SetDefault("database.log_level", "silent")
	viper.SetDefault("database.max_idle_conns", "10")
	viper.SetDefault("database.max_open_conns", "100")
	viper.SetDefault("ml.question_set_path", "data/question-set.csv")
	viper.SetDefault("ml.comment_data_path", "data/comment-dataset.csv")
	viper.SetDefault("media.dir", "media")

	// Map environment variables to config keys
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.seed", "DATABASE_SEED")
	viper.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")
	viper.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")
	viper.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	viper.BindEnv("ml.question_set_path", "ML_QUESTION_SET_PATH")
	viper.BindEnv("ml.comment_data_path", "ML_COMMENT_DATA_PATH")
	viper.BindEnv("media.dir", "MEDIA_DIR")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found, using defaults and environment variables")
		} else {
			slog.Error("Error reading config file", "error", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
		},
		Database: DatabaseConfig{
			URL:          viper.GetString("database.url"),
			Seed:         viper.GetBool("database.seed"),
			LogLevel:     viper.GetString("database.log_level"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("gemini.api_key"),
		},
		ML: MLConfig{
			QuestionSetPath: viper.GetString("ml.question_set_path"),
			CommentDataPath: viper.GetString("ml.comment_data_path"),
		},
		Media: MediaConfig{
			Dir: viper.GetString("media.dir"),
		},
	}
}
