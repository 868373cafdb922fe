package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mimo_finance/internal/adapter/http/handlers/mocks"
	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *mocks.MockIPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc, calendar.New(time.UTC), nil)

	r := gin.New()
	r.POST("/v1/payments", h.CreatePayment)
	r.PUT("/v1/payments/:payment_id/lines", h.UpdateLines)
	r.PATCH("/v1/payments/:payment_id/share", h.Share)
	r.PATCH("/v1/payments/:payment_id/approve", h.Approve)
	r.PATCH("/v1/payments/:payment_id/decline", h.Decline)
	r.PATCH("/v1/payments/:payment_id/hold", h.Hold)
	r.PATCH("/v1/payments/:payment_id/resume", h.Resume)
	r.PATCH("/v1/payments/:payment_id/pay", h.MarkPaid)
	r.POST("/v1/payments/:payment_id/notes", h.AddNote)
	r.POST("/v1/imports", h.Import)
	return r, uc
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments", "{"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid week_start", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments", `{"partner_id":"p1","service_ids":["s1"],"week_start":"06/12/2024"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("double booking", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, fmt.Errorf("%w: s3", usecase.ErrServiceAlreadyLinked))

		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments", `{"partner_id":"p2","service_ids":["s3"]}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		weekStart := time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreatePaymentCommand) (entities.Payment, error) {
			if cmd.PartnerID != "p2" || !cmd.WeekStart.Equal(weekStart) || len(cmd.ServiceIDs) != 1 {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return entities.Payment{ID: "id-1", PartnerID: "p2", ServiceIDs: cmd.ServiceIDs, Total: decimal.NewFromInt(10), Status: entities.PaymentStatusPending}, nil
		})

		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments", `{"partner_id":"p2","service_ids":["s4"],"week_start":"2024-06-19"}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "id-1" || body["total"] != float64(10) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_UpdateLines(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().UpdateLines(gomock.Any(), "pay-2", gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentNotModifiable)

		w := serve(r, jsonRequest(http.MethodPut, "/v1/payments/pay-2/lines", `{"service_ids":["s3"]}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("drafts forwarded", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().UpdateLines(gomock.Any(), "pay-1", gomock.Any()).DoAndReturn(func(_ any, _ string, cmd usecase.UpdateLinesCommand) (entities.Payment, error) {
			if !cmd.Drafts["s1"].Equal(decimal.NewFromInt(95)) {
				t.Fatalf("unexpected drafts: %v", cmd.Drafts)
			}
			return entities.Payment{ID: "pay-1", Total: decimal.NewFromInt(125)}, nil
		})

		w := serve(r, jsonRequest(http.MethodPut, "/v1/payments/pay-1/lines", `{"service_ids":["s1","s2"],"drafts":{"s1":"95"}}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_Actions(t *testing.T) {
	tests := []struct {
		path   string
		action lifecycle.Action
	}{
		{"share", lifecycle.ActionShare},
		{"approve", lifecycle.ActionApprove},
		{"hold", lifecycle.ActionHold},
		{"resume", lifecycle.ActionResume},
		{"pay", lifecycle.ActionMarkPaid},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, uc := newPaymentRouter(t)
			uc.EXPECT().Apply(gomock.Any(), "pay-1", tt.action, "").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusShared}, nil)

			req := httptest.NewRequest(http.MethodPatch, "/v1/payments/pay-1/"+tt.path, nil)
			w := serve(r, req)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	t.Run("decline with reason", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Apply(gomock.Any(), "pay-1", lifecycle.ActionDecline, "wrong week").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusDeclined}, nil)

		w := serve(r, jsonRequest(http.MethodPatch, "/v1/payments/pay-1/decline", `{"reason":"wrong week"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "DECLINED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("decline without reason", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Apply(gomock.Any(), "pay-1", lifecycle.ActionDecline, "").Return(entities.Payment{}, usecase.ErrReasonRequired)

		w := serve(r, httptest.NewRequest(http.MethodPatch, "/v1/payments/pay-1/decline", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Apply(gomock.Any(), "pay-2", lifecycle.ActionShare, "").Return(entities.Payment{}, usecase.ErrIllegalTransition)

		w := serve(r, httptest.NewRequest(http.MethodPatch, "/v1/payments/pay-2/share", nil))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("payout unauthorized", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Apply(gomock.Any(), "pay-1", lifecycle.ActionMarkPaid, "").Return(entities.Payment{}, usecase.ErrPaymentGatewayUnauthorized)

		w := serve(r, httptest.NewRequest(http.MethodPatch, "/v1/payments/pay-1/pay", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPatch, "/v1/payments/pay-1/share", "{"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_AddNote(t *testing.T) {
	t.Run("missing text", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments/pay-1/notes", `{}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().AddNote(gomock.Any(), "pay-1", "checked").Return(entities.Payment{
			ID:       "pay-1",
			NotesLog: []entities.Note{{ID: "n1", Text: "checked"}},
		}, nil)

		w := serve(r, jsonRequest(http.MethodPost, "/v1/payments/pay-1/notes", `{"text":"checked"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_Import(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPost, "/v1/imports", `{}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not a list", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := serve(r, jsonRequest(http.MethodPost, "/v1/imports", `{"services":{"id":"s1"}}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Import(gomock.Any(), gomock.Len(1), gomock.Len(2)).Return(usecase.ImportResult{Payments: 1, Services: 2}, nil)

		body := `{"payments":[{"id":"pay-1","partnerId":"p1","serviceIds":["s1","s2"]}],"services":[{"id":"s1","finalValue":80},{"_id":"s2","finalValue":"20"}]}`
		w := serve(r, jsonRequest(http.MethodPost, "/v1/imports", body))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res map[string]float64
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res["payments"] != 1 || res["services"] != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().Import(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.ImportResult{}, errors.New("throttled"))

		w := serve(r, jsonRequest(http.MethodPost, "/v1/imports", `{"services":[{"id":"s1"}]}`))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
