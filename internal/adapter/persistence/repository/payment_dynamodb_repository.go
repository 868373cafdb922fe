package repository

import (
	"context"
	"fmt"
	"strings"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type noteItem struct {
	ID   string `dynamodbav:"id"`
	At   string `dynamodbav:"at"`
	Text string `dynamodbav:"text"`
}

type paymentItem struct {
	ID                string        `dynamodbav:"id"`
	PartnerID         string        `dynamodbav:"partner_id"`
	PartnerName       string        `dynamodbav:"partner_name,omitempty"`
	ServiceIDs        []string      `dynamodbav:"service_ids"`
	Services          []serviceItem `dynamodbav:"services,omitempty"`
	WeekStart         string        `dynamodbav:"week_start,omitempty"`
	WeekEnd           string        `dynamodbav:"week_end,omitempty"`
	CreatedAt         string        `dynamodbav:"created_at,omitempty"`
	Total             string        `dynamodbav:"total"`
	Status            string        `dynamodbav:"status"`
	PaidAt            string        `dynamodbav:"paid_at,omitempty"`
	NotesLog          []noteItem    `dynamodbav:"notes_log,omitempty"`
	ProviderPaymentID string        `dynamodbav:"provider_payment_id,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Status changes are conditional writes on the current status, so two admins
// acting on the same payment cannot both succeed.
type PaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb dynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, err
	}
	return p, nil
}

// Put writes p as-is, replacing any stored copy. Used by bulk import.
func (r *PaymentDynamoRepository) Put(ctx context.Context, p entities.Payment) error {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) List(ctx context.Context) ([]entities.Payment, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	var out []entities.Payment
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []paymentItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromPaymentItem(it))
		}
	}
	return out, nil
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, id string, upd interfaces.StatusUpdate) (entities.Payment, error) {
	note, err := noteList(upd.Note)
	if err != nil {
		return entities.Payment{}, err
	}
	set := []string{
		"#status = :to",
		"#notes_log = list_append(if_not_exists(#notes_log, :empty), :note)",
	}
	values := map[string]types.AttributeValue{
		":to":    &types.AttributeValueMemberS{Value: string(upd.To)},
		":note":  note,
		":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
	}
	names := map[string]string{
		"#status":    "status",
		"#notes_log": "notes_log",
	}
	if !upd.PaidAt.IsZero() {
		set = append(set, "#paid_at = :paid_at")
		values[":paid_at"] = &types.AttributeValueMemberS{Value: timeToString(upd.PaidAt)}
		names["#paid_at"] = "paid_at"
	}
	if upd.ProviderPaymentID != "" {
		set = append(set, "#provider_payment_id = :provider_payment_id")
		values[":provider_payment_id"] = &types.AttributeValueMemberS{Value: upd.ProviderPaymentID}
		names["#provider_payment_id"] = "provider_payment_id"
	}
	return r.update(ctx, id, upd.From, set, nil, values, names)
}

func (r *PaymentDynamoRepository) UpdateLines(ctx context.Context, id string, upd interfaces.LinesUpdate) (entities.Payment, error) {
	note, err := noteList(upd.Note)
	if err != nil {
		return entities.Payment{}, err
	}
	ids, err := attributevalue.Marshal(upd.ServiceIDs)
	if err != nil {
		return entities.Payment{}, err
	}
	set := []string{
		"#service_ids = :service_ids",
		"#total = :total",
		"#notes_log = list_append(if_not_exists(#notes_log, :empty), :note)",
	}
	values := map[string]types.AttributeValue{
		":service_ids": ids,
		":total":       &types.AttributeValueMemberS{Value: decimalToString(upd.Total)},
		":note":        note,
		":empty":       &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
	}
	names := map[string]string{
		"#service_ids": "service_ids",
		"#total":       "total",
		"#notes_log":   "notes_log",
		"#services":    "services",
	}
	var remove []string
	if len(upd.Embedded) > 0 {
		items := make([]serviceItem, 0, len(upd.Embedded))
		for _, s := range upd.Embedded {
			items = append(items, toServiceItem(s))
		}
		embedded, err := attributevalue.Marshal(items)
		if err != nil {
			return entities.Payment{}, err
		}
		set = append(set, "#services = :services")
		values[":services"] = embedded
	} else {
		remove = append(remove, "#services")
	}
	return r.update(ctx, id, upd.From, set, remove, values, names)
}

func (r *PaymentDynamoRepository) AppendNote(ctx context.Context, id string, n entities.Note) (entities.Payment, error) {
	note, err := noteList(n)
	if err != nil {
		return entities.Payment{}, err
	}
	return r.update(ctx, id, nil,
		[]string{"#notes_log = list_append(if_not_exists(#notes_log, :empty), :note)"},
		nil,
		map[string]types.AttributeValue{
			":note":  note,
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
		map[string]string{"#notes_log": "notes_log"},
	)
}

// update applies SET and REMOVE clauses to an existing payment whose status
// is in from (any status when from is empty). A missing payment yields a zero
// Payment; a status mismatch yields interfaces.ErrConditionFailed.
func (r *PaymentDynamoRepository) update(
	ctx context.Context,
	id string,
	from []entities.PaymentStatus,
	set []string,
	remove []string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Payment, error) {
	cond := "attribute_exists(#id)"
	condNames := map[string]string{"#id": "id"}
	if len(from) > 0 {
		placeholders := make([]string, len(from))
		for i, s := range from {
			ph := fmt.Sprintf(":from%d", i)
			placeholders[i] = ph
			values[ph] = &types.AttributeValueMemberS{Value: string(s)}
		}
		in := "#status IN (" + strings.Join(placeholders, ", ") + ")"
		if containsStatus(from, "") {
			in = "(" + in + " OR attribute_not_exists(#status))"
		}
		cond += " AND " + in
		condNames["#status"] = "status"
	}

	expr := "SET " + strings.Join(set, ", ")
	if len(remove) > 0 {
		expr += " REMOVE " + strings.Join(remove, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 idKey(id),
		ConditionExpression:                 aws.String(cond),
		UpdateExpression:                    aws.String(expr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, condNames),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			if len(old) == 0 {
				return entities.Payment{}, nil
			}
			return entities.Payment{}, interfaces.ErrConditionFailed
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func containsStatus(list []entities.PaymentStatus, s entities.PaymentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func noteList(n entities.Note) (types.AttributeValue, error) {
	return attributevalue.Marshal([]noteItem{toNoteItem(n)})
}

func toNoteItem(n entities.Note) noteItem {
	return noteItem{ID: n.ID, At: timeToString(n.At), Text: n.Text}
}

func toPaymentItem(p entities.Payment) paymentItem {
	it := paymentItem{
		ID:                p.ID,
		PartnerID:         p.PartnerID,
		PartnerName:       p.PartnerName,
		ServiceIDs:        p.ServiceIDs,
		WeekStart:         timeToString(p.WeekStart),
		WeekEnd:           timeToString(p.WeekEnd),
		CreatedAt:         timeToString(p.CreatedAt),
		Total:             decimalToString(p.Total),
		Status:            string(p.Status),
		PaidAt:            timeToString(p.PaidAt),
		ProviderPaymentID: p.ProviderPaymentID,
	}
	if it.ServiceIDs == nil {
		it.ServiceIDs = []string{}
	}
	for _, s := range p.Embedded {
		it.Services = append(it.Services, toServiceItem(s))
	}
	for _, n := range p.NotesLog {
		it.NotesLog = append(it.NotesLog, toNoteItem(n))
	}
	return it
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                it.ID,
		PartnerID:         it.PartnerID,
		PartnerName:       it.PartnerName,
		ServiceIDs:        it.ServiceIDs,
		WeekStart:         parseTime(it.WeekStart),
		WeekEnd:           parseTime(it.WeekEnd),
		CreatedAt:         parseTime(it.CreatedAt),
		Total:             parseDecimal(it.Total),
		Status:            entities.PaymentStatus(it.Status),
		PaidAt:            parseTime(it.PaidAt),
		ProviderPaymentID: it.ProviderPaymentID,
	}
	for _, s := range it.Services {
		p.Embedded = append(p.Embedded, fromServiceItem(s))
	}
	for _, n := range it.NotesLog {
		p.NotesLog = append(p.NotesLog, entities.Note{ID: n.ID, At: parseTime(n.At), Text: n.Text})
	}
	return p
}
