package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultActivityLogsTableName = "activity_logs"

type activityLogItem struct {
	ID          string  `dynamodbav:"id"`
	ActionType  string  `dynamodbav:"action_type"`
	QuoteID     *string `dynamodbav:"quote_id,omitempty"`
	QuoteNumber string  `dynamodbav:"quote_number"`
	PerformedBy string  `dynamodbav:"performed_by"`
	Details     string  `dynamodbav:"details,omitempty"`
	CreatedAt   string  `dynamodbav:"created_at"`
}

// ActivityLogDynamoRepository persists ActivityLog entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Entries are insert-only; no update or delete path exists.

type ActivityLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IActivityLogRepository = (*ActivityLogDynamoRepository)(nil)

func NewActivityLogDynamoRepository(ddb *dynamodb.Client, tableName string) *ActivityLogDynamoRepository {
	if tableName == "" {
		tableName = defaultActivityLogsTableName
	}
	return &ActivityLogDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ActivityLogDynamoRepository) BatchCreate(ctx context.Context, logs []entities.ActivityLog) error {
	for start := 0; start < len(logs); start += batchWriteChunkSize {
		end := start + batchWriteChunkSize
		if end > len(logs) {
			end = len(logs)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, l := range logs[start:end] {
			av, err := attributevalue.MarshalMap(toActivityLogItem(l))
			if err != nil {
				return err
			}
			writes = append(writes, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}

		_, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: writes},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivityLogDynamoRepository) List(ctx context.Context, filter interfaces.ActivityLogFilter) ([]entities.ActivityLog, error) {
	var exprs []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}

	if filter.ActionType != nil {
		exprs = append(exprs, "#action_type = :action_type")
		names["#action_type"] = "action_type"
		values[":action_type"] = &types.AttributeValueMemberS{Value: string(*filter.ActionType)}
	}
	if filter.StartDate != nil {
		exprs = append(exprs, "#created_at >= :start_date")
		names["#created_at"] = "created_at"
		values[":start_date"] = &types.AttributeValueMemberS{Value: formatTime(*filter.StartDate)}
	}
	if filter.EndDate != nil {
		exprs = append(exprs, "#created_at < :end_date")
		names["#created_at"] = "created_at"
		values[":end_date"] = &types.AttributeValueMemberS{Value: formatTime(*filter.EndDate)}
	}

	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if len(exprs) > 0 {
		input.FilterExpression = aws.String(strings.Join(exprs, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var logs []entities.ActivityLog
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it activityLogItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			logs = append(logs, fromActivityLogItem(it))
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if filter.Limit > 0 && len(logs) > filter.Limit {
		logs = logs[:filter.Limit]
	}
	return logs, nil
}

func toActivityLogItem(l entities.ActivityLog) activityLogItem {
	return activityLogItem{
		ID:          l.ID,
		ActionType:  string(l.ActionType),
		QuoteID:     l.QuoteID,
		QuoteNumber: l.QuoteNumber,
		PerformedBy: l.PerformedBy,
		Details:     l.Details,
		CreatedAt:   formatTime(l.CreatedAt),
	}
}

func fromActivityLogItem(it activityLogItem) entities.ActivityLog {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.ActivityLog{
		ID:          it.ID,
		ActionType:  entities.ActionType(it.ActionType),
		QuoteID:     it.QuoteID,
		QuoteNumber: it.QuoteNumber,
		PerformedBy: it.PerformedBy,
		Details:     it.Details,
		CreatedAt:   createdAt,
	}
}
