package repository

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// updateBuilder accumulates SET/REMOVE clauses for an UpdateItem call.
// Setting the same attribute twice keeps the last value.

type updateBuilder struct {
	sets    []string
	removes []string
	values  map[string]types.AttributeValue
	names   map[string]string
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{
		values: map[string]types.AttributeValue{},
		names:  map[string]string{},
	}
}

func (b *updateBuilder) set(attr string, v types.AttributeValue) {
	placeholder := "#" + attr
	if _, seen := b.names[placeholder]; !seen {
		b.sets = append(b.sets, placeholder+" = :"+attr)
	}
	b.names[placeholder] = attr
	b.values[":"+attr] = v
}

func (b *updateBuilder) setString(attr string, v *string) {
	if v == nil {
		return
	}
	b.set(attr, &types.AttributeValueMemberS{Value: *v})
}

func (b *updateBuilder) setBool(attr string, v *bool) {
	if v == nil {
		return
	}
	b.set(attr, &types.AttributeValueMemberBOOL{Value: *v})
}

func (b *updateBuilder) remove(attr string) {
	placeholder := "#" + attr
	b.names[placeholder] = attr
	b.removes = append(b.removes, placeholder)
}

func (b *updateBuilder) build() (string, map[string]types.AttributeValue, map[string]string) {
	expr := "SET " + strings.Join(b.sets, ", ")
	if len(b.removes) > 0 {
		expr += " REMOVE " + strings.Join(b.removes, ", ")
	}
	return expr, b.values, b.names
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	return &t
}

// batchWriteChunkSize is the DynamoDB BatchWriteItem request cap.
const batchWriteChunkSize = 25
