package repository

import (
	"context"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type serviceItem struct {
	ID              string `dynamodbav:"id"`
	PartnerID       string `dynamodbav:"partner_id,omitempty"`
	PartnerName     string `dynamodbav:"partner_name,omitempty"`
	FirstName       string `dynamodbav:"first_name,omitempty"`
	LastName        string `dynamodbav:"last_name,omitempty"`
	ServiceDate     string `dynamodbav:"service_date,omitempty"`
	ServiceTypeID   string `dynamodbav:"service_type_id,omitempty"`
	ServiceTypeName string `dynamodbav:"service_type_name,omitempty"`
	Park            string `dynamodbav:"park,omitempty"`
	Location        string `dynamodbav:"location,omitempty"`
	Team            string `dynamodbav:"team,omitempty"`
	Guests          int    `dynamodbav:"guests,omitempty"`
	Hopper          bool   `dynamodbav:"hopper,omitempty"`
	FinalValue      string `dynamodbav:"final_value"`
	Observation     string `dynamodbav:"observation,omitempty"`
	CreatedAt       string `dynamodbav:"created_at,omitempty"`
}

// ServiceDynamoRepository persists Service entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type ServiceDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb dynamoAPI, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	var out []entities.Service
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []serviceItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromServiceItem(it))
		}
	}
	return out, nil
}

// Put writes s as-is, replacing any stored copy.
func (r *ServiceDynamoRepository) Put(ctx context.Context, s entities.Service) error {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *ServiceDynamoRepository) UpdateFinalValue(ctx context.Context, id string, value decimal.Decimal) (entities.Service, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #final_value = :final_value"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":final_value": &types.AttributeValueMemberS{Value: decimalToString(value)},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#final_value": "final_value",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return entities.Service{}, nil
		}
		return entities.Service{}, err
	}
	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func toServiceItem(s entities.Service) serviceItem {
	return serviceItem{
		ID:              s.ID,
		PartnerID:       s.PartnerID,
		PartnerName:     s.PartnerName,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		ServiceDate:     timeToString(s.ServiceDate),
		ServiceTypeID:   s.ServiceType.ID,
		ServiceTypeName: s.ServiceType.Name,
		Park:            s.Park,
		Location:        s.Location,
		Team:            s.Team,
		Guests:          s.Guests,
		Hopper:          s.Hopper,
		FinalValue:      decimalToString(s.FinalValue),
		Observation:     s.Observation,
		CreatedAt:       timeToString(s.CreatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	return entities.Service{
		ID:          it.ID,
		PartnerID:   it.PartnerID,
		PartnerName: it.PartnerName,
		FirstName:   it.FirstName,
		LastName:    it.LastName,
		ServiceDate: parseTime(it.ServiceDate),
		ServiceType: entities.ServiceType{ID: it.ServiceTypeID, Name: it.ServiceTypeName},
		Park:        it.Park,
		Location:    it.Location,
		Team:        it.Team,
		Guests:      it.Guests,
		Hopper:      it.Hopper,
		FinalValue:  parseDecimal(it.FinalValue),
		Observation: it.Observation,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
