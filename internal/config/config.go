// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	HTTPAddr     string `mapstructure:"HTTP_ADDR"`
	DBURL        string `mapstructure:"DB_URL"`
	WebhookToken string `mapstructure:"WEBHOOK_TOKEN"`

	JiraEndpoint string `mapstructure:"JIRA_ENDPOINT"`
	JiraUsername string `mapstructure:"JIRA_USERNAME"`
	JiraToken    string `mapstructure:"JIRA_TOKEN"`

	JiraProjectKey     string `mapstructure:"JIRA_PROJECT_KEY"`
	JiraIssueType      string `mapstructure:"JIRA_ISSUE_TYPE"`
	JiraAssignee       string `mapstructure:"JIRA_ASSIGNEE"`
	JiraOpenStatusID   string `mapstructure:"JIRA_OPEN_STATUS_ID"`
	JiraClosedStatusID string `mapstructure:"JIRA_CLOSED_STATUS_ID"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// JiraComponents maps a GitHub repository name to the Jira component id
	// attached to issues created for that repository.
	JiraComponents map[string]string `mapstructure:"JIRA_COMPONENTS"`
}

// defaultComponents is the repository -> Jira component table of the
// reference deployment. Repositories not listed here get no component.
var defaultComponents = map[string]string{
	"arxiv-auth":            "16109",
	"arxiv-references":      "15800",
	"arxiv-fulltext":        "16001",
	"arxiv-browse":          "15700",
	"arxiv-search":          "16000",
	"arxiv-submission-core": "16110",
	"arxiv-base":            "16028",
	"arxiv-sync":            "16046",
	"arxiv-docs":            "16038",
	"arxiv-submission-ui":   "15801",
	"arxiv-readability":     "16048",
	"arxiv-rss":             "16027",
	"arxiv-compiler":        "16047",
	"arxiv-api-gateway":     "16045",
	"arxiv-canonical":       "16100",
	"arxiv-marxdown":        "16038",
	"arxiv-vault":           "16112",
	"arxiv-external-links":  "16105",
	"arxiv-authors":         "16014",
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("JIRA_PROJECT_KEY", "ARXIVNG")
	viper.SetDefault("JIRA_ISSUE_TYPE", "Task")
	viper.SetDefault("JIRA_ASSIGNEE", "")
	viper.SetDefault("JIRA_OPEN_STATUS_ID", "1")
	viper.SetDefault("JIRA_CLOSED_STATUS_ID", "7")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("JIRA_COMPONENTS", defaultComponents)

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.WebhookToken == "" {
		return nil, errors.New("WEBHOOK_TOKEN is a required configuration field")
	}
	if cfg.JiraEndpoint == "" {
		return nil, errors.New("JIRA_ENDPOINT is a required configuration field")
	}
	if cfg.JiraUsername == "" || cfg.JiraToken == "" {
		return nil, errors.New("JIRA_USERNAME and JIRA_TOKEN are required configuration fields")
	}

	return &cfg, nil
}
