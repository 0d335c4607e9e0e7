package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/goccy/go-json"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SecretsAPI é o subconjunto do cliente do Secrets Manager usado aqui.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// novoClienteSecrets é trocado nos testes.
var novoClienteSecrets = func(ctx context.Context) (SecretsAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregar configuração AWS: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// RecuperarCredenciais lê usuário e senha do banco de um segredo JSON
// {"username": ..., "password": ...}.
func RecuperarCredenciais(ctx context.Context, secretID string) (Credentials, error) {
	if secretID == "" {
		return Credentials{}, errors.New("DB_SECRET_ID não definido")
	}
	client, err := novoClienteSecrets(ctx)
	if err != nil {
		return Credentials{}, err
	}
	return lerSegredo(ctx, client, secretID)
}

func lerSegredo(ctx context.Context, client SecretsAPI, secretID string) (Credentials, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("ler segredo %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return Credentials{}, fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	var c Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &c); err != nil {
		return Credentials{}, fmt.Errorf("decodificar segredo %s: %w", secretID, err)
	}
	if c.Username == "" || c.Password == "" {
		return Credentials{}, fmt.Errorf("segredo %s sem username/password", secretID)
	}
	return c, nil
}
