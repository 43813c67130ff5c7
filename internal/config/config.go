package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds every runtime option the application recognizes.
// Values come from config.yaml (optional) and are overridden by
// environment variables; a .env file is loaded first if present.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Email     EmailConfig     `yaml:"email"`
	Recaptcha RecaptchaConfig `yaml:"recaptcha"`
	Payment   PaymentConfig   `yaml:"payment"`
	Google    GoogleConfig    `yaml:"google"`
	Admin     AdminConfig     `yaml:"admin"`
	Web       WebConfig       `yaml:"web"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	Secret string `yaml:"secret"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromName     string `yaml:"from_name"`
	NotifyEmail  string `yaml:"notify_email"`
}

type RecaptchaConfig struct {
	SiteKey   string `yaml:"site_key"`
	SecretKey string `yaml:"secret_key"`
}

type PaymentConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CallbackURL  string `yaml:"callback_url"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type WebConfig struct {
	TemplatesGlob string `yaml:"templates_glob"`
	StaticDir     string `yaml:"static_dir"`
}

// Load builds the configuration. Missing files are not an error:
// everything has a development default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = ""
	cfg.Server.Port = 3000
	cfg.Server.Env = "development"
	cfg.Database.Path = "./data/app.db"
	cfg.Session.Secret = "tu-cadena-secreta-cambiala-en-produccion-12345abc"
	cfg.Email.SMTPPort = 587
	cfg.Payment.BaseURL = "https://fakepayment.onrender.com"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "admin"
	cfg.Web.TemplatesGlob = "web/templates/*.html"
	cfg.Web.StaticDir = "web/static"
	return cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Email.SMTPHost, "EMAIL_HOST")
	setInt(&cfg.Email.SMTPPort, "EMAIL_PORT")
	setString(&cfg.Email.SMTPUser, "EMAIL_USER")
	setString(&cfg.Email.SMTPPassword, "EMAIL_PASS")
	setString(&cfg.Email.FromName, "EMAIL_FROM_NAME")
	setString(&cfg.Email.NotifyEmail, "NOTIFY_EMAIL")
	setString(&cfg.Recaptcha.SiteKey, "RECAPTCHA_SITE_KEY")
	setString(&cfg.Recaptcha.SecretKey, "RECAPTCHA_SECRET_KEY")
	setString(&cfg.Payment.BaseURL, "FAKE_PAYMENT_API_URL")
	setString(&cfg.Payment.APIKey, "FAKE_PAYMENT_API_KEY")
	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Google.CallbackURL, "GOOGLE_CALLBACK_URL")
	setString(&cfg.Admin.Username, "ADMIN_USERNAME")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
