package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskerpro/config"
	"taskerpro/database"
	"taskerpro/firebase"
	"taskerpro/handlers"
	"taskerpro/services"
	"taskerpro/utilities"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	utilities.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := firebase.InitializeFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Erro ao inicializar Firebase: %v", err)
	}
	authVerifier, err := firebase.NewAuthVerifier(ctx, app)
	if err != nil {
		log.Fatalf("Erro ao obter cliente de Auth: %v", err)
	}
	handlers.InitAuth(authVerifier)

	var db *sql.DB
	if cfg.UsesPostgres() {
		db, err = database.ConnectPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Erro ao preparar o banco de dados: %v", err)
		}
		handlers.InitUsers(database.NewUserStore(db))
	} else {
		utilities.LogWarn("Banco de dados não configurado (DB_NAME vazio); rotas de usuário desabilitadas")
	}

	var opts []services.Option
	switch cfg.TaskStore {
	case config.StorePostgres:
		opts = append(opts, services.WithStore(database.NewPostgresTaskStore(db)))
	case config.StoreFirestore:
		client, err := firebase.GetFirestoreClient(ctx, app)
		if err != nil {
			log.Fatalf("Erro ao obter cliente do Firestore: %v", err)
		}
		defer client.Close()
		opts = append(opts, services.WithStore(firebase.NewFirestoreTaskStore(client)))
	}

	taskService := services.NewTaskService(opts...)
	if err := taskService.Restore(ctx); err != nil {
		log.Fatalf("Erro ao restaurar tarefas: %v", err)
	}
	handlers.InitTaskService(taskService)

	srv := newServer(cfg)
	go func() {
		utilities.LogInfo("Servidor iniciado na porta %s (armazenamento de tarefas: %s)", cfg.Port, cfg.TaskStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro no servidor HTTP: %v", err)
		}
	}()

	<-ctx.Done()
	utilities.LogInfo("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utilities.LogError(err, "Erro ao encerrar servidor")
	}
}
