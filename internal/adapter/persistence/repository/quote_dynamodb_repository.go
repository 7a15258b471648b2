package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName   = "quotes"
	defaultCountersTableName = "counters"

	quoteNumberCounterID = "quote_number_sequence"
	quoteNumberBase      = 1000
)

type quoteItem struct {
	ID               string  `dynamodbav:"id"`
	QuoteNumber      string  `dynamodbav:"quote_number"`
	CustomerName     string  `dynamodbav:"customer_name"`
	CustomerNumber   string  `dynamodbav:"customer_number"`
	CustomerCompany  string  `dynamodbav:"customer_company"`
	ProductName      *string `dynamodbav:"product_name,omitempty"`
	SalesOrderNumber *string `dynamodbav:"sales_order_number,omitempty"`
	CustomRugSKU     *string `dynamodbav:"custom_rug_sku,omitempty"`
	Status           string  `dynamodbav:"status"`
	CADFileURL       *string `dynamodbav:"cad_file_url,omitempty"`
	ImageRenderURL   *string `dynamodbav:"image_render_url,omitempty"`
	DocumentsURL     *string `dynamodbav:"documents_url,omitempty"`
	CADRequested     bool    `dynamodbav:"cad_requested"`
	CADApproved      bool    `dynamodbav:"cad_approved"`
	CADApprovedAt    *string `dynamodbav:"cad_approved_at,omitempty"`
	SwatchApproved   bool    `dynamodbav:"swatch_approved"`
	SwatchApprovedAt *string `dynamodbav:"swatch_approved_at,omitempty"`
	SwatchApprovedBy *string `dynamodbav:"swatch_approved_by,omitempty"`
	CreatedAt        string  `dynamodbav:"created_at"`
	UpdatedAt        string  `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string)
//   - counters: PK id (string), used for the quote-number sequence
//
// This adapter also owns the behavior the original backend delegated to
// store triggers: quote-number allocation on insert, approval-timestamp
// stamping and status advancement when an approval flag transitions.

type QuoteDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	countersTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName, countersTable string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = defaultQuotesTableName
	}
	if countersTable == "" {
		countersTable = defaultCountersTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName, countersTable: countersTable}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	number, err := r.nextQuoteNumber(ctx)
	if err != nil {
		return entities.Quote{}, err
	}
	q.QuoteNumber = number

	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

// nextQuoteNumber atomically advances the sequence counter and formats the
// human-facing number. The first allocation yields "Q-1001".
func (r *QuoteDynamoRepository) nextQuoteNumber(ctx context.Context) (string, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: quoteNumberCounterID},
		},
		UpdateExpression: aws.String("ADD #n :one"),
		ExpressionAttributeNames: map[string]string{
			"#n": "last_number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return "", err
	}

	n, ok := out.Attributes["last_number"].(*types.AttributeValueMemberN)
	if !ok {
		return "", errors.New("counter item missing last_number")
	}
	v, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Q-%d", quoteNumberBase+v), nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.QuoteListFilter) ([]entities.Quote, error) {
	var exprs []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}

	if filter.Status != nil {
		exprs = append(exprs, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(*filter.Status)}
	}
	if filter.CustomerNumber != "" {
		exprs = append(exprs, "#customer_number = :customer_number")
		names["#customer_number"] = "customer_number"
		values[":customer_number"] = &types.AttributeValueMemberS{Value: filter.CustomerNumber}
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		exprs = append(exprs, "(contains(#customer_name, :search) OR contains(#customer_number_s, :search) OR contains(#quote_number, :search))")
		names["#customer_name"] = "customer_name"
		names["#customer_number_s"] = "customer_number"
		names["#quote_number"] = "quote_number"
		values[":search"] = &types.AttributeValueMemberS{Value: s}
	}
	if filter.CreatedFrom != nil {
		exprs = append(exprs, "#created_at >= :created_from")
		names["#created_at"] = "created_at"
		values[":created_from"] = &types.AttributeValueMemberS{Value: formatTime(*filter.CreatedFrom)}
	}
	if filter.CreatedTo != nil {
		exprs = append(exprs, "#created_at < :created_to")
		names["#created_at"] = "created_at"
		values[":created_to"] = &types.AttributeValueMemberS{Value: formatTime(*filter.CreatedTo)}
	}

	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if len(exprs) > 0 {
		input.FilterExpression = aws.String(strings.Join(exprs, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var quotes []entities.Quote
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
	}

	// Newest first, matching the admin listing order.
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error) {
	now := formatTime(time.Now().UTC())

	b := newUpdateBuilder()
	b.set("updated_at", &types.AttributeValueMemberS{Value: now})

	b.setString("customer_name", patch.CustomerName)
	b.setString("customer_number", patch.CustomerNumber)
	b.setString("customer_company", patch.CustomerCompany)
	b.setString("product_name", patch.ProductName)
	b.setString("sales_order_number", patch.SalesOrderNumber)
	b.setString("custom_rug_sku", patch.CustomRugSKU)
	b.setString("cad_file_url", patch.CADFileURL)
	b.setString("image_render_url", patch.ImageRenderURL)
	b.setString("documents_url", patch.DocumentsURL)
	b.setBool("cad_requested", patch.CADRequested)

	if patch.Status != nil {
		b.set("status", &types.AttributeValueMemberS{Value: string(*patch.Status)})
	}

	// Trigger emulation: an approval-flag transition stamps or clears the
	// matching timestamp, and a grant advances status to the Approved stage
	// unless the patch carries an explicit status of its own.
	if patch.CADApproved != nil {
		b.set("cad_approved", &types.AttributeValueMemberBOOL{Value: *patch.CADApproved})
		if *patch.CADApproved {
			b.set("cad_approved_at", &types.AttributeValueMemberS{Value: now})
			if patch.Status == nil {
				b.set("status", &types.AttributeValueMemberS{Value: string(entities.StatusCADApproved)})
			}
		} else {
			b.remove("cad_approved_at")
		}
	}
	if patch.SwatchApproved != nil {
		b.set("swatch_approved", &types.AttributeValueMemberBOOL{Value: *patch.SwatchApproved})
		if *patch.SwatchApproved {
			b.set("swatch_approved_at", &types.AttributeValueMemberS{Value: now})
			if patch.SwatchApprovedBy != nil {
				b.set("swatch_approved_by", &types.AttributeValueMemberS{Value: *patch.SwatchApprovedBy})
			}
			if patch.Status == nil {
				b.set("status", &types.AttributeValueMemberS{Value: string(entities.StatusSwatchApproved)})
			}
		} else {
			b.remove("swatch_approved_at")
			b.remove("swatch_approved_by")
		}
	} else if patch.SwatchApprovedBy != nil {
		b.set("swatch_approved_by", &types.AttributeValueMemberS{Value: *patch.SwatchApprovedBy})
	}

	expr, values, names := b.build()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		CustomerName:     q.CustomerName,
		CustomerNumber:   q.CustomerNumber,
		CustomerCompany:  q.CustomerCompany,
		ProductName:      q.ProductName,
		SalesOrderNumber: q.SalesOrderNumber,
		CustomRugSKU:     q.CustomRugSKU,
		Status:           string(q.Status),
		CADFileURL:       q.CADFileURL,
		ImageRenderURL:   q.ImageRenderURL,
		DocumentsURL:     q.DocumentsURL,
		CADRequested:     q.CADRequested,
		CADApproved:      q.CADApproved,
		CADApprovedAt:    formatTimePtr(q.CADApprovedAt),
		SwatchApproved:   q.SwatchApproved,
		SwatchApprovedAt: formatTimePtr(q.SwatchApprovedAt),
		SwatchApprovedBy: q.SwatchApprovedBy,
		CreatedAt:        formatTime(q.CreatedAt),
		UpdatedAt:        formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Quote{
		ID:               it.ID,
		QuoteNumber:      it.QuoteNumber,
		CustomerName:     it.CustomerName,
		CustomerNumber:   it.CustomerNumber,
		CustomerCompany:  it.CustomerCompany,
		ProductName:      it.ProductName,
		SalesOrderNumber: it.SalesOrderNumber,
		CustomRugSKU:     it.CustomRugSKU,
		Status:           entities.QuoteStatus(it.Status),
		CADFileURL:       it.CADFileURL,
		ImageRenderURL:   it.ImageRenderURL,
		DocumentsURL:     it.DocumentsURL,
		CADRequested:     it.CADRequested,
		CADApproved:      it.CADApproved,
		CADApprovedAt:    parseTimePtr(it.CADApprovedAt),
		SwatchApproved:   it.SwatchApproved,
		SwatchApprovedAt: parseTimePtr(it.SwatchApprovedAt),
		SwatchApprovedBy: it.SwatchApprovedBy,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
