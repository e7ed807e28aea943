package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/prerna-auth/internal/domain"
)

// maxUnprocessedRounds bounds how often DeleteAll resubmits items DynamoDB
// returned as unprocessed before giving up.
const maxUnprocessedRounds = 3

// otpItem is the stored shape of an OTP record.
// PK: phonenumber, SK: created_at (Unix nanoseconds), so a descending query
// with Limit 1 yields the most recent record.
type otpItem struct {
	PhoneNumber string `dynamodbav:"phonenumber"`
	CreatedAt   int64  `dynamodbav:"created_at"`
	OtpID       string `dynamodbav:"otp_id"`
	CodeHash    string `dynamodbav:"otp"`
}

func toOtpItem(o *domain.OtpRecord) otpItem {
	return otpItem{
		PhoneNumber: o.PhoneNumber,
		CreatedAt:   o.CreatedAt.UnixNano(),
		OtpID:       o.OtpID,
		CodeHash:    o.CodeHash,
	}
}

func (i otpItem) toDomain() *domain.OtpRecord {
	return &domain.OtpRecord{
		OtpID:       i.OtpID,
		PhoneNumber: i.PhoneNumber,
		CodeHash:    i.CodeHash,
		CreatedAt:   time.Unix(0, i.CreatedAt).UTC(),
	}
}

// OtpRepo stores pending OTP challenges. Records accumulate until consumed.
type OtpRepo struct {
	client    API
	tableName string
}

func NewOtpRepo(client API, tableName string) *OtpRepo {
	return &OtpRepo{client: client, tableName: tableName}
}

func (r *OtpRepo) Create(ctx context.Context, o *domain.OtpRecord) error {
	item, err := attributevalue.MarshalMap(toOtpItem(o))
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Latest returns the most recently created record for phone. Reads are strongly
// consistent so a code stored moments ago is visible.
func (r *OtpRepo) Latest(ctx context.Context, phone string) (*domain.OtpRecord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("#p = :p"),
		ExpressionAttributeNames:  map[string]string{"#p": attrPhoneNumber},
		ExpressionAttributeValues: map[string]types.AttributeValue{":p": &types.AttributeValueMemberS{Value: phone}},
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(1),
		ConsistentRead:            aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	var it otpItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return nil, err
	}
	return it.toDomain(), nil
}

// DeleteAll removes every record for phone and returns how many were deleted.
// The key query is strongly consistent so the record just verified is included.
func (r *OtpRepo) DeleteAll(ctx context.Context, phone string) (int, error) {
	var deletes []types.WriteRequest
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String("#p = :p"),
			ProjectionExpression:      aws.String("#p, #c"),
			ExpressionAttributeNames:  map[string]string{"#p": attrPhoneNumber, "#c": attrCreatedAt},
			ExpressionAttributeValues: map[string]types.AttributeValue{":p": &types.AttributeValueMemberS{Value: phone}},
			ExclusiveStartKey:         startKey,
			ConsistentRead:            aws.Bool(true),
		})
		if err != nil {
			return 0, err
		}
		for _, item := range out.Items {
			deletes = append(deletes, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: map[string]types.AttributeValue{
					attrPhoneNumber: item[attrPhoneNumber],
					attrCreatedAt:   item[attrCreatedAt],
				}},
			})
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	for _, batch := range chunk(deletes, batchWriteLimit) {
		if err := r.batchDelete(ctx, batch); err != nil {
			return 0, err
		}
	}
	return len(deletes), nil
}

func (r *OtpRepo) batchDelete(ctx context.Context, batch []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{r.tableName: batch}
	for round := 0; round < maxUnprocessedRounds; round++ {
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems[r.tableName]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
	}
	return fmt.Errorf("delete otps: %d items left unprocessed", len(pending[r.tableName]))
}
