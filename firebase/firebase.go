package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"taskerpro/utilities"
)

// InitializeFirebase cria o App a partir do arquivo de credenciais da conta de serviço.
func InitializeFirebase(ctx context.Context, credentialsPath string) (*firebase.App, error) {
	if credentialsPath == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_PATH não está definido nas variáveis de ambiente")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar Firebase: %w", err)
	}

	utilities.LogInfo("Firebase inicializado com sucesso!")
	return app, nil
}

// NewAuthVerifier obtém o cliente de Auth do App.
func NewAuthVerifier(ctx context.Context, app *firebase.App) (*AuthVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente de Auth: %w", err)
	}
	return &AuthVerifier{client: client}, nil
}

// GetFirestoreClient obtém o cliente do Firestore do App.
func GetFirestoreClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente do Firestore: %w", err)
	}
	return client, nil
}
