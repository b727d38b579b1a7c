// Package ddb implements the RecordStore interface using AWS DynamoDB.
// This is the only layer that should have knowledge of DynamoDB specifics.
//
// Records live in a single table: partition key "user_id", sort key
// "date_timestamp" holding the composite "<date>#<timestamp>#<recordId>"
// string. No secondary index is needed; a single-day read is a begins_with
// prefix query on the sort key.
package ddb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

const (
	partitionKeyAttr = "user_id"
	sortKeyAttr      = "date_timestamp"
)

// ddbFoodRecord is the DynamoDB item shape. The date, timestamp, and record
// id are not stored as separate attributes; they are recovered from the sort
// key on read, exactly as they were written.
type ddbFoodRecord struct {
	UserID        string   `dynamodbav:"user_id"`
	DateTimestamp string   `dynamodbav:"date_timestamp"`
	Name          string   `dynamodbav:"name"`
	Calories      float64  `dynamodbav:"calories"`
	Protein       float64  `dynamodbav:"protein"`
	Carbs         float64  `dynamodbav:"carbs"`
	Fat           float64  `dynamodbav:"fat"`
	Quantity      *float64 `dynamodbav:"quantity,omitempty"`
	CreatedAt     string   `dynamodbav:"createdAt"`
}

// recordStore is the concrete DynamoDB implementation.
type recordStore struct {
	dbClient  *dynamodb.Client
	tableName string
}

// NewRecordStore creates a DynamoDB-backed record store.
func NewRecordStore(dbClient *dynamodb.Client, tableName string) repository.RecordStore {
	return &recordStore{
		dbClient:  dbClient,
		tableName: tableName,
	}
}

// Put writes one record under its composite sort key.
func (s *recordStore) Put(ctx context.Context, userID string, record domain.FoodRecord) error {
	item, err := attributevalue.MarshalMap(ddbFoodRecord{
		UserID:        userID,
		DateTimestamp: record.Key(),
		Name:          record.Name,
		Calories:      record.Calories,
		Protein:       record.Protein,
		Carbs:         record.Carbs,
		Fat:           record.Fat,
		Quantity:      record.Quantity,
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return appErrors.NewInternal("failed to marshal food record item", err)
	}

	_, err = s.dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return appErrors.NewUnavailable("put item failed for food record", err)
	}
	return nil
}

// QueryByDay returns every record under the "<date>#" sort-key prefix for
// the user's partition, unordered.
func (s *recordStore) QueryByDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error) {
	prefix, err := domain.BuildDayPrefix(date)
	if err != nil {
		return nil, err
	}

	keyCond := expression.KeyAnd(
		expression.Key(partitionKeyAttr).Equal(expression.Value(userID)),
		expression.Key(sortKeyAttr).BeginsWith(prefix),
	)
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, appErrors.NewInternal("failed to build day query expression", err)
	}

	records := []domain.FoodRecord{}
	paginator := dynamodb.NewQueryPaginator(s.dbClient, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, appErrors.NewUnavailable("day prefix query failed", err)
		}
		for _, item := range page.Items {
			record, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// DeleteByKey removes exactly one record. The item is read first so the
// ownership check can run even though the partition is already scoped to the
// caller.
func (s *recordStore) DeleteByKey(ctx context.Context, userID, key string) error {
	if _, err := domain.ParseRecordDate(key); err != nil {
		return err
	}

	result, err := s.dbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(userID, key),
	})
	if err != nil {
		return appErrors.NewUnavailable("get item failed for food record", err)
	}
	if result.Item == nil {
		return appErrors.NewNotFound("food record not found")
	}

	var item ddbFoodRecord
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return appErrors.NewInternal("failed to unmarshal food record item", err)
	}
	if item.UserID != userID {
		return appErrors.NewForbidden("food record belongs to another user")
	}

	_, err = s.dbClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(userID, key),
	})
	if err != nil {
		return appErrors.NewUnavailable("delete item failed for food record", err)
	}
	return nil
}

// DeleteBulk removes each key independently. A failing key is reported in
// the result and never aborts the rest.
func (s *recordStore) DeleteBulk(ctx context.Context, userID string, keys []string) (domain.BulkResult, error) {
	result := domain.BulkResult{
		Succeeded: []string{},
		Failed:    []domain.BulkFailure{},
	}
	for _, key := range keys {
		if err := s.DeleteByKey(ctx, userID, key); err != nil {
			result.Failed = append(result.Failed, domain.BulkFailure{Key: key, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, key)
	}
	return result, nil
}

func itemKey(userID, sortKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKeyAttr: &types.AttributeValueMemberS{Value: userID},
		sortKeyAttr:      &types.AttributeValueMemberS{Value: sortKey},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (domain.FoodRecord, error) {
	var ddbItem ddbFoodRecord
	if err := attributevalue.UnmarshalMap(item, &ddbItem); err != nil {
		return domain.FoodRecord{}, appErrors.NewInternal("failed to unmarshal food record item", err)
	}
	date, timestamp, recordID, err := domain.ParseRecordKey(ddbItem.DateTimestamp)
	if err != nil {
		return domain.FoodRecord{}, appErrors.Wrap(err, "stored sort key is malformed")
	}
	createdAt, _ := time.Parse(time.RFC3339, ddbItem.CreatedAt)
	return domain.FoodRecord{
		UserID:    ddbItem.UserID,
		Date:      date,
		Timestamp: timestamp,
		RecordID:  recordID,
		Name:      ddbItem.Name,
		Calories:  ddbItem.Calories,
		Protein:   ddbItem.Protein,
		Carbs:     ddbItem.Carbs,
		Fat:       ddbItem.Fat,
		Quantity:  ddbItem.Quantity,
		CreatedAt: createdAt,
	}, nil
}
