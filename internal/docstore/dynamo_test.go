package docstore_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/backend/internal/cascade"
	"github.com/tripjournal/backend/internal/docstore"
	"github.com/tripjournal/backend/internal/domain"
)

// fakeDynamo is an in-memory table that understands just enough of the
// DynamoDB API for the package: one partition per pk, items ordered by sk,
// and the attribute_exists / attribute_not_exists conditions on sk.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]map[string]types.AttributeValue
	queries  []*dynamodb.QueryInput
	txns     []*dynamodb.TransactWriteItemsInput
	txErr    error
	queryErr error
	pageSize int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]map[string]types.AttributeValue{}}
}

// put seeds n key-only documents into partition pk.
func (f *fakeDynamo) put(pk string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < n; i++ {
		sk := fmt.Sprintf("id-%04d", i)
		item, _ := attributevalue.MarshalMap(docstore.DocKey{PK: pk, SK: sk})
		f.store(pk, sk, item)
	}
}

func (f *fakeDynamo) store(pk, sk string, item map[string]types.AttributeValue) {
	if f.items[pk] == nil {
		f.items[pk] = map[string]map[string]types.AttributeValue{}
	}
	f.items[pk][sk] = item
}

// sks returns the sort keys of partition pk in ascending order.
func (f *fakeDynamo) sks(pk string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedKeys(pk)
}

func (f *fakeDynamo) sortedKeys(pk string) []string {
	keys := make([]string, 0, len(f.items[pk]))
	for sk := range f.items[pk] {
		keys = append(keys, sk)
	}
	slices.Sort(keys)
	return keys
}

func keyOf(t map[string]types.AttributeValue) (docstore.DocKey, error) {
	var key docstore.DocKey
	err := attributevalue.UnmarshalMap(t, &key)
	return key, err
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := keyOf(in.Item)
	if err != nil {
		return nil, err
	}
	if _, exists := f.items[key.PK][key.SK]; exists && in.ConditionExpression != nil {
		return nil, conditionFailed()
	}
	f.store(key.PK, key.SK, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	if _, exists := f.items[key.PK][key.SK]; !exists && in.ConditionExpression != nil {
		return nil, conditionFailed()
	}
	delete(f.items[key.PK], key.SK)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Query serves a partition in sk order. It honours Limit, and pageSize (when
// set) splits results into pages linked by LastEvaluatedKey.
func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	// The key condition binds the partition key as the only value.
	var pk string
	for _, v := range in.ExpressionAttributeValues {
		pk = v.(*types.AttributeValueMemberS).Value
	}

	keys := f.sortedKeys(pk)
	if in.ExclusiveStartKey != nil {
		start, err := keyOf(in.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		i, _ := slices.BinarySearch(keys, start.SK)
		for i < len(keys) && keys[i] <= start.SK {
			i++
		}
		keys = keys[i:]
	}
	n := len(keys)
	if in.Limit != nil {
		n = min(n, int(aws.ToInt32(in.Limit)))
	}
	if f.pageSize > 0 {
		n = min(n, f.pageSize)
	}

	out := &dynamodb.QueryOutput{}
	for _, sk := range keys[:n] {
		out.Items = append(out.Items, f.items[pk][sk])
	}
	if f.pageSize > 0 && n < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: keys[n-1]},
		}
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txns = append(f.txns, in)
	if f.txErr != nil {
		return nil, f.txErr
	}
	for _, it := range in.TransactItems {
		key, err := keyOf(it.Delete.Key)
		if err != nil {
			return nil, err
		}
		delete(f.items[key.PK], key.SK)
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

var _ docstore.API = (*fakeDynamo)(nil)
var _ cascade.Store = (*docstore.DynamoStore)(nil)

func photosPath() domain.CollectionPath {
	return domain.TripPath{Tenant: "app-1", User: "u-1", TripID: "t-1"}.Collection(domain.PhotosCollection)
}

func TestDynamoStore_Page(t *testing.T) {
	fake := newFakeDynamo()
	fake.put(photosPath().String(), 5)
	store := docstore.NewDynamoStore(fake, "journal-docs")

	ids, err := store.Page(context.Background(), photosPath(), 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"id-0000", "id-0001", "id-0002"}, ids)

	require.Len(t, fake.queries, 1)
	q := fake.queries[0]
	assert.Equal(t, "journal-docs", aws.ToString(q.TableName))
	assert.True(t, aws.ToBool(q.ScanIndexForward), "ascending sort key order")
	assert.True(t, aws.ToBool(q.ConsistentRead))
	assert.EqualValues(t, 3, aws.ToInt32(q.Limit))
}

func TestDynamoStore_Page_Empty(t *testing.T) {
	store := docstore.NewDynamoStore(newFakeDynamo(), "journal-docs")

	ids, err := store.Page(context.Background(), photosPath(), 100)

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDynamoStore_DeleteBatch_OneTransaction(t *testing.T) {
	fake := newFakeDynamo()
	fake.put(photosPath().String(), 3)
	store := docstore.NewDynamoStore(fake, "journal-docs")

	err := store.DeleteBatch(context.Background(), photosPath(), []string{"id-0000", "id-0001"})

	require.NoError(t, err)
	require.Len(t, fake.txns, 1)
	assert.Len(t, fake.txns[0].TransactItems, 2)
	assert.Equal(t, []string{"id-0002"}, fake.sks(photosPath().String()))
}

func TestDynamoStore_DeleteBatch_TooLarge(t *testing.T) {
	fake := newFakeDynamo()
	store := docstore.NewDynamoStore(fake, "journal-docs")

	ids := make([]string, docstore.MaxTransactItems+1)
	err := store.DeleteBatch(context.Background(), photosPath(), ids)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, fake.txns)
}

func TestDynamoStore_DeleteBatch_Error(t *testing.T) {
	fake := newFakeDynamo()
	fake.txErr = errors.New("TransactionCanceledException")
	store := docstore.NewDynamoStore(fake, "journal-docs")

	err := store.DeleteBatch(context.Background(), photosPath(), []string{"id-0000"})

	assert.ErrorIs(t, err, fake.txErr)
}

// TestDynamoStore_CascadeJob drains a trip stored in DynamoDB end to end.
func TestDynamoStore_CascadeJob(t *testing.T) {
	fake := newFakeDynamo()
	trip := domain.TripPath{Tenant: "app-1", User: "u-1", TripID: "t-1"}
	fake.put(trip.Collection(domain.DailyEntriesCollection).String(), 230)
	fake.put(trip.Collection(domain.PhotosCollection).String(), 7)
	store := docstore.NewDynamoStore(fake, "journal-docs")

	job := cascade.NewJob(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := job.Run(context.Background(), trip)

	require.NoError(t, err)
	assert.Empty(t, fake.sks(trip.Collection(domain.DailyEntriesCollection).String()))
	assert.Empty(t, fake.sks(trip.Collection(domain.PhotosCollection).String()))
	assert.Len(t, fake.txns, 4, "3 entry batches + 1 photo batch")
}
