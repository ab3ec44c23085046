// Package docstore encapsula a coleção de usuários persistida no DynamoDB.
//
// O pacote expõe um Store com operações de CRUD sobre um único tipo de
// documento. O acesso ao SDK acontece através da interface DynamoDBClient,
// permitindo mock completo nos testes.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ErrNotFound sinaliza que o documento não existe na tabela.
var ErrNotFound = errors.New("docstore: item not found")

// User é o documento armazenado na coleção de usuários.
// O id é atribuído pelo store no momento da criação.
type User struct {
	ID    string `json:"id" dynamodbav:"id"`
	Nome  string `json:"nome" dynamodbav:"nome"`
	Email string `json:"email" dynamodbav:"email"`
}

// Patch descreve uma atualização parcial: campos vazios não sobrescrevem
// o valor existente.
type Patch struct {
	Nome  string
	Email string
}

// DynamoDBClient é o subconjunto do client do SDK usado pelo Store.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

const hashKey = "id"

// Store é o client da coleção de usuários. Uma instância é criada no boot
// e compartilhada por todas as requisições.
type Store struct {
	client DynamoDBClient
	table  string
}

// New cria um Store sobre a tabela informada.
func New(client DynamoDBClient, table string) *Store {
	return &Store{client: client, table: table}
}

// Create atribui um id novo e persiste o usuário.
func (s *Store) Create(ctx context.Context, nome, email string) (*User, error) {
	user := User{
		ID:    uuid.NewString(),
		Nome:  nome,
		Email: email,
	}

	av, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("docstore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: put failed: %w", err)
	}
	return &user, nil
}

// FindAll retorna todos os usuários da tabela (Scan completo, ordem
// definida pelo store).
func (s *Store) FindAll(ctx context.Context) ([]User, error) {
	users := []User{}
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("docstore: scan failed: %w", err)
		}

		var page []User
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("docstore: unmarshal failed: %w", err)
		}
		users = append(users, page...)

		if out.LastEvaluatedKey == nil {
			return users, nil
		}
		lastKey = out.LastEvaluatedKey
	}
}

// FindByID busca um usuário pela chave primária.
func (s *Store) FindByID(ctx context.Context, id string) (*User, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: get failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var user User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("docstore: unmarshal failed: %w", err)
	}
	return &user, nil
}

// UpdateByID aplica um patch parcial sobre o documento existente
// (read-merge-write). Propaga ErrNotFound sem gravar nada quando o id
// não existe.
func (s *Store) UpdateByID(ctx context.Context, id string, patch Patch) (*User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nome != "" {
		user.Nome = patch.Nome
	}
	if patch.Email != "" {
		user.Email = patch.Email
	}

	av, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("docstore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: put failed: %w", err)
	}
	return user, nil
}

// DeleteByID remove o usuário. Retorna ErrNotFound quando o id não
// existe, para que a camada HTTP distinga remoção de alvo ausente.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       key(id),
	})
	if err != nil {
		return fmt.Errorf("docstore: delete failed: %w", err)
	}
	return nil
}

// Probe verifica a conectividade com a tabela lendo no máximo um item.
// found indica se a coleção tem ao menos um usuário.
func (s *Store) Probe(ctx context.Context) (found bool, err error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("docstore: probe failed: %w", err)
	}
	return len(out.Items) > 0, nil
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		hashKey: &types.AttributeValueMemberS{Value: id},
	}
}
