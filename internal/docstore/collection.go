package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
)

// collection stores one kind of child document. T is the item shape and must
// carry the pk and sk attributes.
type collection[T any] struct {
	client API
	table  string
	name   string
}

// path is the partition holding owner's documents of this kind for tripID.
func (c collection[T]) path(owner domain.Owner, tripID uuid.UUID) domain.CollectionPath {
	return domain.Trip{ID: tripID, Owner: owner}.Path().Collection(c.name)
}

// put writes a new document. An existing document with the same key is never
// overwritten.
func (c collection[T]) put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("sk").AttributeNotExists()).Build()
	if err != nil {
		return fmt.Errorf("build expression: %w", err)
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(c.table),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("document already exists: %w", err)
		}
		return err
	}
	return nil
}

// list returns every document in partition coll, following LastEvaluatedKey
// until the partition is exhausted.
func (c collection[T]) list(ctx context.Context, coll domain.CollectionPath) ([]T, error) {
	keyCond := expression.Key("pk").Equal(expression.Value(coll.String()))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	pages := dynamodb.NewQueryPaginator(c.client, &dynamodb.QueryInput{
		TableName:                 aws.String(c.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	items := []T{}
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		items = append(items, page...)
	}
	return items, nil
}

// delete removes document id from coll.
// Returns domain.ErrNotFound if it does not exist.
func (c collection[T]) delete(ctx context.Context, coll domain.CollectionPath, id string) error {
	key, err := attributevalue.MarshalMap(DocKey{PK: coll.String(), SK: id})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("sk").AttributeExists()).Build()
	if err != nil {
		return fmt.Errorf("build expression: %w", err)
	}

	_, err = c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(c.table),
		Key:                       key,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
