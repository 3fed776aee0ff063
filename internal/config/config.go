package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		// Provider selects the sending backend: smtp, brevo, ses
		Provider string `yaml:"provider"`

		FromEmail string `yaml:"from_email"`
		FromName  string `yaml:"from_name"`
		// StaffEmail is the fixed recipient for application notifications.
		StaffEmail string `yaml:"staff_email"`
		StaffName  string `yaml:"staff_name"`
		// SendStartupTest fires a canned email at boot to verify credentials.
		SendStartupTest bool `yaml:"send_startup_test"`

		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`

		BrevoAPIKey  string `yaml:"brevo_api_key"`
		BrevoBaseURL string `yaml:"brevo_base_url"`

		SESRegion string `yaml:"ses_region"`
	} `yaml:"email"`

	Storage struct {
		// Type selects the file backend: local, s3
		Type     string `yaml:"type"`
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
		// AttachmentMode decides where uploaded bytes live:
		// "reference" keeps files in the storage backend and records a path,
		// "inline" embeds the raw bytes in the candidate record.
		AttachmentMode string `yaml:"attachment_mode"`

		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var AppConfig *Config

// LoadConfig reads config.yaml and applies environment overrides.
// A .env file next to the binary is honoured the way the original
// deployment expected.
func LoadConfig() {
	_ = godotenv.Load()

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "failed to parse config file %s: %v\n", configPath, err)
			os.Exit(1)
		}
		f.Close()
	}

	applyEnvOverrides(cfg)

	AppConfig = cfg
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"

	cfg.Email.Provider = "smtp"
	cfg.Email.SMTPPort = 587
	cfg.Email.BrevoBaseURL = "https://api.brevo.com"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"
	cfg.Storage.AttachmentMode = "reference"

	cfg.Upload.MaxSize = 60 * 1024 * 1024 // 60MB, as the original multer cap
	cfg.Upload.AllowedTypes = []string{"application/pdf", "image/png", "image/jpeg"}

	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("EMAIL_PROVIDER"); v != "" {
		cfg.Email.Provider = v
	}
	if v := os.Getenv("BREVO_API_KEY"); v != "" {
		cfg.Email.BrevoAPIKey = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("STAFF_EMAIL"); v != "" {
		cfg.Email.StaffEmail = v
	}
	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Email.FromEmail = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORS.AllowedOrigins = origins
	}
}

// Validate checks the settings the process cannot run without.
// Failures here are configuration errors and abort startup.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is not configured (set database.url or DATABASE_URL)")
	}
	if c.Email.FromEmail == "" {
		return fmt.Errorf("email.from_email is not configured")
	}
	if c.Email.StaffEmail == "" {
		return fmt.Errorf("email.staff_email is not configured")
	}
	switch c.Email.Provider {
	case "smtp":
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email.smtp_host is required for the smtp provider")
		}
	case "brevo":
		if c.Email.BrevoAPIKey == "" {
			return fmt.Errorf("email.brevo_api_key is required for the brevo provider")
		}
	case "ses":
		if c.Email.SESRegion == "" {
			return fmt.Errorf("email.ses_region is required for the ses provider")
		}
	default:
		return fmt.Errorf("unsupported email provider: %s", c.Email.Provider)
	}
	switch c.Storage.AttachmentMode {
	case "reference", "inline":
	default:
		return fmt.Errorf("unsupported attachment mode: %s", c.Storage.AttachmentMode)
	}
	return nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
