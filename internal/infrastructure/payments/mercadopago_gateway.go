package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"mimo_finance/internal/config"
	"mimo_finance/internal/usecase/interfaces"
	"mimo_finance/pkg/logger"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const idempotencyHeader = "X-Idempotency-Key"

const requestTimeout = 10 * time.Second

// MercadoPagoGateway pays partners out through Mercado Pago. In mock mode no
// request leaves the process and every payout is approved.
//
// The idempotency key passed to CreatePayment is sent as X-Idempotency-Key, so
// Mercado Pago answers a repeated key with the payment it already created.
type MercadoPagoGateway struct {
	client        payment.Client
	mockMode      bool
	paymentMethod string
	payerEmail    string
	log           *zap.Logger
	now           func() time.Time

	mu    sync.Mutex
	mocks map[string]mockPayout
}

type mockPayout struct {
	id  string
	raw json.RawMessage
}

type idempotencyKeyCtx struct{}

// idempotentRequester replaces the random idempotency key the SDK puts on
// every write with the one carried by the request context.
type idempotentRequester struct {
	client *http.Client
}

func (r idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, _ := req.Context().Value(idempotencyKeyCtx{}).(string); key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return r.client.Do(req)
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg config.PayoutConfig, log *zap.Logger) (*MercadoPagoGateway, error) {
	log = logger.OrNop(log)
	g := &MercadoPagoGateway{
		paymentMethod: cfg.PaymentMethodID,
		payerEmail:    cfg.PayerEmail,
		log:           log,
		now:           time.Now,
		mocks:         make(map[string]mockPayout),
	}
	if cfg.Mock {
		log.Info("[payment][gateway] mock mode enabled")
		g.mockMode = true
		return g, nil
	}

	if cfg.AccessToken == "" {
		log.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	mpCfg, err := mpconfig.New(cfg.AccessToken,
		mpconfig.WithHTTPClient(idempotentRequester{client: &http.Client{Timeout: requestTimeout}}))
	if err != nil {
		log.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	log.Info("[payment][gateway] Mercado Pago client initialized")
	g.client = payment.NewClient(mpCfg)
	return g, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	requestPayload = g.withDefaults(requestPayload)

	if g.mockMode {
		return g.mockCreate(idempotencyKey, requestPayload)
	}

	if g.client == nil {
		g.log.Error("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Info("[payment][gateway] create start",
		zap.String("idempotency_key", idempotencyKey),
		zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.log.Error("[payment][gateway] payload unmarshal failed", zap.Error(err))
		return "", "", nil, err
	}

	if idempotencyKey != "" {
		ctx = context.WithValue(ctx, idempotencyKeyCtx{}, idempotencyKey)
	}
	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Error("[payment][gateway] sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.log.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return "", "", nil, err
	}
	g.log.Info("[payment][gateway] create success",
		zap.Int("provider_payment_id", resp.ID),
		zap.String("provider_status", resp.Status))

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockCreate(idempotencyKey string, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	g.log.Info("[payment][gateway] mock create start", zap.Int("payload_len", len(requestPayload)))

	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.mocks[idempotencyKey]; ok && idempotencyKey != "" {
		g.log.Info("[payment][gateway] mock create replayed", zap.String("idempotency_key", idempotencyKey), zap.String("provider_payment_id", prev.id))
		return prev.id, "approved", prev.raw, nil
	}

	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := strconv.FormatInt(g.now().UTC().UnixNano(), 10)
	now := g.now().UTC().Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = now
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = now
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.log.Error("[payment][gateway] mock response marshal failed", zap.Error(err))
		return "", "", nil, err
	}

	if idempotencyKey != "" {
		g.mocks[idempotencyKey] = mockPayout{id: id, raw: b}
	}
	g.log.Info("[payment][gateway] mock create success", zap.String("provider_payment_id", id), zap.String("provider_status", "approved"))
	return id, "approved", b, nil
}

// withDefaults fills payment_method_id and payer.email from configuration
// when the payload does not carry them.
func (g *MercadoPagoGateway) withDefaults(requestPayload json.RawMessage) json.RawMessage {
	var m map[string]any
	if err := json.Unmarshal(requestPayload, &m); err != nil || m == nil {
		return requestPayload
	}
	if v, _ := m["payment_method_id"].(string); strings.TrimSpace(v) == "" && g.paymentMethod != "" {
		m["payment_method_id"] = g.paymentMethod
	}
	payer, _ := m["payer"].(map[string]any)
	if payer == nil {
		payer = map[string]any{}
	}
	if v, _ := payer["email"].(string); strings.TrimSpace(v) == "" && g.payerEmail != "" {
		payer["email"] = g.payerEmail
		m["payer"] = payer
	}
	b, err := json.Marshal(m)
	if err != nil {
		return requestPayload
	}
	return b
}
