package services

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir()) // no .env file present

	config := LoadConfig()

	if config.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", config.Server.Port)
	}
	if !config.Database.Seed {
		t.Error("Database.Seed must default to true")
	}
	if config.Database.LogLevel != "silent" {
		t.Errorf("Database.LogLevel = %q, want silent", config.Database.LogLevel)
	}
	if config.Database.MaxIdleConns != 10 || config.Database.MaxOpenConns != 100 {
		t.Errorf("unexpected pool defaults %+v", config.Database)
	}
	if config.ML.QuestionSetPath != "data/question-set.csv" {
		t.Errorf("ML.QuestionSetPath = %q", config.ML.QuestionSetPath)
	}
	if config.ML.CommentDataPath != "data/comment-dataset.csv" {
		t.Errorf("ML.CommentDataPath = %q", config.ML.CommentDataPath)
	}
	if config.Media.Dir != "media" {
		t.Errorf("Media.Dir = %q, want media", config.Media.Dir)
	}
	if config.AI.GeminiAPIKey != "" {
		t.Errorf("AI.GeminiAPIKey must default to empty, got %q", config.AI.GeminiAPIKey)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_SEED", "false")
	t.Setenv("ML_QUESTION_SET_PATH", "/srv/data/questions.csv")
	t.Setenv("MEDIA_DIR", "/srv/media")

	config := LoadConfig()

	if config.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", config.Server.Port)
	}
	if config.Database.Seed {
		t.Error("Database.Seed must honor the environment override")
	}
	if config.ML.QuestionSetPath != "/srv/data/questions.csv" {
		t.Errorf("ML.QuestionSetPath = %q", config.ML.QuestionSetPath)
	}
	if config.Media.Dir != "/srv/media" {
		t.Errorf("Media.Dir = %q", config.Media.Dir)
	}
}
