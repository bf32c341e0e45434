// Package docstore keeps trip child documents (daily entries and photos) in
// DynamoDB. The API writes them through EntryRepo and PhotoRepo; the cascade
// job drains them through DynamoStore.
//
// All child documents live in a single table keyed by collection path and
// document id:
//
//	pk = "{tenant}/users/{user}/trips/{tripId}/{collection}"
//	sk = "{documentId}"
//
// A collection is therefore one partition, and the sort key gives the stable
// identifier order the drain relies on.
package docstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tripjournal/backend/internal/domain"
)

// MaxTransactItems is DynamoDB's limit on items in one TransactWriteItems call.
const MaxTransactItems = 100

// API is the subset of *dynamodb.Client the package uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DocKey is the primary key of a child document.
type DocKey struct {
	PK string `dynamodbav:"pk"`
	SK string `dynamodbav:"sk"`
}

// DynamoStore satisfies cascade.Store over a DynamoDB table.
type DynamoStore struct {
	client API
	table  string
}

// NewDynamoStore constructs a DynamoStore over table.
func NewDynamoStore(client API, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// Page returns up to limit document ids of coll in ascending sort-key order.
// Reads are strongly consistent so a page never returns documents deleted by
// the batch committed just before it.
func (s *DynamoStore) Page(ctx context.Context, coll domain.CollectionPath, limit int) ([]string, error) {
	keyCond := expression.Key("pk").Equal(expression.Value(coll.String()))
	proj := expression.NamesList(expression.Name("sk"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("docstore.DynamoStore.Page: build expression: %w", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
		ConsistentRead:            aws.Bool(true),
		Limit:                     aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("docstore.DynamoStore.Page: %w", err)
	}

	var keys []DocKey
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &keys); err != nil {
		return nil, fmt.Errorf("docstore.DynamoStore.Page: unmarshal: %w", err)
	}

	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.SK
	}
	return ids, nil
}

// DeleteBatch deletes ids from coll in one transaction: either every document
// is removed or none is.
func (s *DynamoStore) DeleteBatch(ctx context.Context, coll domain.CollectionPath, ids []string) error {
	if len(ids) > MaxTransactItems {
		return fmt.Errorf("docstore.DynamoStore.DeleteBatch: %w: %d items exceeds transaction limit %d",
			domain.ErrValidation, len(ids), MaxTransactItems)
	}
	if len(ids) == 0 {
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(ids))
	for _, id := range ids {
		key, err := attributevalue.MarshalMap(DocKey{PK: coll.String(), SK: id})
		if err != nil {
			return fmt.Errorf("docstore.DynamoStore.DeleteBatch: marshal key: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(s.table),
				Key:       key,
			},
		})
	}

	if _, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return fmt.Errorf("docstore.DynamoStore.DeleteBatch: %w", err)
	}
	return nil
}
