// Package config lê a configuração do serviço do ambiente (e do .env, se existir).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Backends aceitos em TASK_STORE.
const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
)

// Database agrupa as variáveis DB_* usadas pela conexão com o PostgreSQL.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN monta a string de conexão no formato aceito pelo lib/pq.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Config holds the service settings.
type Config struct {
	Port                    string
	AllowedOrigins          []string
	LogLevel                string
	TaskStore               string
	FirebaseCredentialsPath string
	Database                Database
}

// Load carrega o .env (quando existir) e monta a Config a partir do ambiente.
// A ausência do .env não é erro; um .env malformado é.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("erro ao carregar o arquivo .env: %w", err)
	}
	return FromEnv()
}

// FromEnv monta a Config apenas a partir das variáveis de ambiente.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                    getEnv("SERVER_PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		TaskStore:               strings.ToLower(getEnv("TASK_STORE", StoreMemory)),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	cfg.AllowedOrigins = []string{"*"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	switch cfg.TaskStore {
	case StoreMemory, StorePostgres, StoreFirestore:
	default:
		return nil, fmt.Errorf("TASK_STORE inválido: %q", cfg.TaskStore)
	}

	if cfg.TaskStore == StoreFirestore && cfg.FirebaseCredentialsPath == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_PATH é obrigatório quando TASK_STORE=firestore")
	}

	return cfg, nil
}

// UsesPostgres informa se o banco relacional precisa ser aberto. Ele guarda as
// tabelas de identidade mesmo quando as tarefas ficam só em memória.
func (c *Config) UsesPostgres() bool {
	return c.TaskStore == StorePostgres || c.Database.Name != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
