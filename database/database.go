package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskerpro/config"
	"taskerpro/utilities"

	_ "github.com/lib/pq"
)

// ConnectPostgres abre a conexão com o PostgreSQL e confirma com um ping.
func ConnectPostgres(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		utilities.LogError(err, "Erro ao abrir conexão com o banco de dados")
		return nil, fmt.Errorf("erro ao abrir conexão com o banco de dados: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		utilities.LogError(err, "Erro ao conectar ao banco de dados")
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	utilities.LogInfo("Conectado ao PostgreSQL com sucesso! (%s:%s/%s)", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
