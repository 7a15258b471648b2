package repository

import (
	"context"
	"sort"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultNotesTableName = "quote_notes"
	notesQuoteIDIndex     = "quote_id-index"
)

type quoteNoteItem struct {
	ID        string `dynamodbav:"id"`
	QuoteID   string `dynamodbav:"quote_id"`
	Content   string `dynamodbav:"content"`
	CreatedBy string `dynamodbav:"created_by"`
	CreatedAt string `dynamodbav:"created_at"`
}

// QuoteNoteDynamoRepository persists QuoteNote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)

type QuoteNoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteNoteRepository = (*QuoteNoteDynamoRepository)(nil)

func NewQuoteNoteDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteNoteDynamoRepository {
	if tableName == "" {
		tableName = defaultNotesTableName
	}
	return &QuoteNoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteNoteDynamoRepository) BatchCreate(ctx context.Context, notes []entities.QuoteNote) error {
	for start := 0; start < len(notes); start += batchWriteChunkSize {
		end := start + batchWriteChunkSize
		if end > len(notes) {
			end = len(notes)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, n := range notes[start:end] {
			av, err := attributevalue.MarshalMap(toQuoteNoteItem(n))
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

func (r *QuoteNoteDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteNote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(notesQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}

	notes := make([]entities.QuoteNote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteNoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		notes = append(notes, fromQuoteNoteItem(it))
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func toQuoteNoteItem(n entities.QuoteNote) quoteNoteItem {
	return quoteNoteItem{
		ID:        n.ID,
		QuoteID:   n.QuoteID,
		Content:   n.Content,
		CreatedBy: n.CreatedBy,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func fromQuoteNoteItem(it quoteNoteItem) entities.QuoteNote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.QuoteNote{
		ID:        it.ID,
		QuoteID:   it.QuoteID,
		Content:   it.Content,
		CreatedBy: it.CreatedBy,
		CreatedAt: createdAt,
	}
}
