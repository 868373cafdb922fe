package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// fakeDynamo serves scans page by page and records update inputs.
type fakeDynamo struct {
	pages     [][]map[string]types.AttributeValue
	scans     int
	lastScan  *dynamodb.ScanInput
	update    *dynamodb.UpdateItemInput
	updateOut map[string]types.AttributeValue
	updateErr error
	put       *dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.lastScan = in
	page := f.pages[f.scans]
	f.scans++
	out := &dynamodb.ScanOutput{Items: page}
	if f.scans < len(f.pages) {
		out.LastEvaluatedKey = idKey("cursor")
	}
	return out, nil
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestPaymentItemRoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	p := entities.Payment{
		ID:         "pay-1",
		PartnerID:  "p1",
		ServiceIDs: []string{"s1", "s2"},
		Embedded:   []entities.Service{{ID: "s9", FinalValue: decimal.RequireFromString("12.50")}},
		WeekStart:  at,
		Total:      decimal.RequireFromString("100.10"),
		Status:     entities.PaymentStatusShared,
		NotesLog:   []entities.Note{{ID: "n1", At: at, Text: "shared"}},
	}
	got := fromPaymentItem(toPaymentItem(p))
	if got.ID != p.ID || len(got.ServiceIDs) != 2 || !got.WeekStart.Equal(at) || !got.PaidAt.IsZero() {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if !got.Total.Equal(p.Total) || !got.Embedded[0].FinalValue.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("amounts lost: %+v", got)
	}
	if len(got.NotesLog) != 1 || got.NotesLog[0].Text != "shared" {
		t.Fatalf("notes lost: %+v", got.NotesLog)
	}
}

func TestPaymentDynamoRepository_List(t *testing.T) {
	f := &fakeDynamo{pages: [][]map[string]types.AttributeValue{
		{mustMarshal(t, paymentItem{ID: "a", Total: "1", Status: "PENDING"})},
		{mustMarshal(t, paymentItem{ID: "b", Total: "2", Status: "PAID"})},
	}}
	got, err := NewPaymentDynamoRepository(f, "payments").List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.scans != 2 || len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("expected both pages, got %d scans and %+v", f.scans, got)
	}
}

func TestPaymentDynamoRepository_UpdateStatus(t *testing.T) {
	upd := interfaces.StatusUpdate{
		From:   []entities.PaymentStatus{entities.PaymentStatusApproved},
		To:     entities.PaymentStatusPaid,
		PaidAt: time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC),
		Note:   entities.Note{ID: "n1", Text: "paid"},
	}

	t.Run("builds a conditional write", func(t *testing.T) {
		f := &fakeDynamo{updateOut: mustMarshal(t, paymentItem{ID: "pay-1", Status: "PAID", Total: "0"})}
		got, err := NewPaymentDynamoRepository(f, "payments").UpdateStatus(context.Background(), "pay-1", upd)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Status != entities.PaymentStatusPaid {
			t.Fatalf("unexpected status: %s", got.Status)
		}
		cond := aws.ToString(f.update.ConditionExpression)
		if cond != "attribute_exists(#id) AND #status IN (:from0)" {
			t.Fatalf("unexpected condition: %s", cond)
		}
		expr := aws.ToString(f.update.UpdateExpression)
		if !strings.Contains(expr, "#paid_at = :paid_at") || strings.Contains(expr, "provider_payment_id") {
			t.Fatalf("unexpected update expression: %s", expr)
		}
	})

	t.Run("status mismatch", func(t *testing.T) {
		f := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{
			Item: mustMarshal(t, paymentItem{ID: "pay-1", Status: "PAID"}),
		}}
		_, err := NewPaymentDynamoRepository(f, "payments").UpdateStatus(context.Background(), "pay-1", upd)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}
	})

	t.Run("missing payment", func(t *testing.T) {
		f := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		got, err := NewPaymentDynamoRepository(f, "payments").UpdateStatus(context.Background(), "nope", upd)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero payment, got %+v err=%v", got, err)
		}
	})

	t.Run("missing stored status", func(t *testing.T) {
		f := &fakeDynamo{updateOut: mustMarshal(t, paymentItem{ID: "pay-1"})}
		_, err := NewPaymentDynamoRepository(f, "payments").UpdateStatus(context.Background(), "pay-1", interfaces.StatusUpdate{
			From: []entities.PaymentStatus{entities.PaymentStatusPending, ""},
			To:   entities.PaymentStatusShared,
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		cond := aws.ToString(f.update.ConditionExpression)
		if !strings.Contains(cond, "OR attribute_not_exists(#status)") {
			t.Fatalf("unexpected condition: %s", cond)
		}
	})
}

func TestPaymentDynamoRepository_UpdateLines(t *testing.T) {
	t.Run("drops embedded copies", func(t *testing.T) {
		f := &fakeDynamo{updateOut: mustMarshal(t, paymentItem{ID: "pay-1", Status: "PENDING", Total: "10", ServiceIDs: []string{"s4"}})}
		got, err := NewPaymentDynamoRepository(f, "payments").UpdateLines(context.Background(), "pay-1", interfaces.LinesUpdate{
			From:       []entities.PaymentStatus{entities.PaymentStatusPending},
			ServiceIDs: []string{"s4"},
			Total:      decimal.RequireFromString("10"),
			Note:       entities.Note{ID: "n1", Text: "lines"},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got.Embedded) != 0 || !got.Total.Equal(decimal.RequireFromString("10")) {
			t.Fatalf("unexpected payment: %+v", got)
		}
		expr := aws.ToString(f.update.UpdateExpression)
		if !strings.HasSuffix(expr, " REMOVE #services") || strings.Contains(expr, ":services") {
			t.Fatalf("unexpected update expression: %s", expr)
		}
		if _, ok := f.update.ExpressionAttributeValues[":services"]; ok {
			t.Fatalf("no embedded value expected")
		}
	})

	t.Run("rewrites kept embedded copies", func(t *testing.T) {
		f := &fakeDynamo{updateOut: mustMarshal(t, paymentItem{ID: "pay-1", Status: "PENDING", Total: "12.5"})}
		_, err := NewPaymentDynamoRepository(f, "payments").UpdateLines(context.Background(), "pay-1", interfaces.LinesUpdate{
			ServiceIDs: []string{"e1"},
			Embedded:   []entities.Service{{ID: "e1", FinalValue: decimal.RequireFromString("12.50")}},
			Total:      decimal.RequireFromString("12.5"),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		expr := aws.ToString(f.update.UpdateExpression)
		if !strings.Contains(expr, "#services = :services") || strings.Contains(expr, "REMOVE") {
			t.Fatalf("unexpected update expression: %s", expr)
		}
		list, ok := f.update.ExpressionAttributeValues[":services"].(*types.AttributeValueMemberL)
		if !ok || len(list.Value) != 1 {
			t.Fatalf("expected one embedded copy, got %#v", f.update.ExpressionAttributeValues[":services"])
		}
	})
}

func TestServiceDynamoRepository(t *testing.T) {
	t.Run("put keeps amounts exact", func(t *testing.T) {
		f := &fakeDynamo{}
		s := entities.Service{ID: "s1", FinalValue: decimal.RequireFromString("1250.50"), ServiceType: entities.ServiceType{ID: "t1", Name: "Park Tour"}}
		if err := NewServiceDynamoRepository(f, "services").Put(context.Background(), s); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		var it serviceItem
		if err := attributevalue.UnmarshalMap(f.put.Item, &it); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if it.FinalValue != "1250.5" || it.ServiceTypeName != "Park Tour" {
			t.Fatalf("unexpected item: %+v", it)
		}
	})

	t.Run("update missing service", func(t *testing.T) {
		f := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		got, err := NewServiceDynamoRepository(f, "services").UpdateFinalValue(context.Background(), "nope", decimal.NewFromInt(3))
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero service, got %+v err=%v", got, err)
		}
	})
}

func TestPartnerDynamoRepository_ListPartnerNames(t *testing.T) {
	f := &fakeDynamo{pages: [][]map[string]types.AttributeValue{{
		mustMarshal(t, userItem{ID: "p1", Name: "Ana Lima", Role: "partner"}),
		mustMarshal(t, userItem{ID: "p2", FirstName: "Bruno", LastName: "Reis", Role: "partner"}),
		mustMarshal(t, userItem{ID: "p3", Role: "partner"}),
	}}}
	got, err := NewPartnerDynamoRepository(f, "users").ListPartnerNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got["p1"] != "Ana Lima" || got["p2"] != "Bruno Reis" {
		t.Fatalf("unexpected names: %+v", got)
	}
	if _, ok := got["p3"]; ok {
		t.Fatalf("nameless partner must be left out")
	}
	if aws.ToString(f.lastScan.FilterExpression) != "#role = :role" {
		t.Fatalf("expected role filter, got %v", f.lastScan.FilterExpression)
	}
}
