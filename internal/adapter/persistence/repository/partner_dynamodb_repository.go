package repository

import (
	"context"
	"strings"

	"mimo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const partnerRole = "partner"

type userItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name,omitempty"`
	FirstName string `dynamodbav:"first_name,omitempty"`
	LastName  string `dynamodbav:"last_name,omitempty"`
	Role      string `dynamodbav:"role,omitempty"`
}

// PartnerDynamoRepository reads partner display names from the users table.
type PartnerDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPartnerDirectory = (*PartnerDynamoRepository)(nil)

func NewPartnerDynamoRepository(ddb dynamoAPI, tableName string) *PartnerDynamoRepository {
	return &PartnerDynamoRepository{ddb: ddb, tableName: tableName}
}

// ListPartnerNames maps partner id to display name. Users without a usable
// name are left out so callers fall back to their own placeholder.
func (r *PartnerDynamoRepository) ListPartnerNames(ctx context.Context) (map[string]string, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#role = :role"),
		ExpressionAttributeNames: map[string]string{
			"#role": "role",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":role": &types.AttributeValueMemberS{Value: partnerRole},
		},
	})

	out := map[string]string{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []userItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			if name := it.displayName(); it.ID != "" && name != "" {
				out[it.ID] = name
			}
		}
	}
	return out, nil
}

func (it userItem) displayName() string {
	if n := strings.TrimSpace(it.Name); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(it.FirstName) + " " + strings.TrimSpace(it.LastName))
}
