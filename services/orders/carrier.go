package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const carrierCancelPath = "/switch-status/cancel"

// CarrierGateway cancels shipments on the carrier side.
type CarrierGateway interface {
	CancelOrders(ctx context.Context, orderCodes []string) (*CarrierCancelResponse, error)
}

// CarrierCancelResult is the carrier verdict for one shipment.
type CarrierCancelResult struct {
	OrderCode string `json:"order_code"`
	Result    bool   `json:"result"`
	Message   string `json:"message,omitempty"`
}

// CarrierCancelResponse is the decoded cancel response plus its raw body,
// which is kept for the waybill audit log.
type CarrierCancelResponse struct {
	Results []CarrierCancelResult
	Raw     []byte
}

// Find returns the record for the given carrier order code.
func (r *CarrierCancelResponse) Find(orderCode string) (CarrierCancelResult, bool) {
	for _, result := range r.Results {
		if result.OrderCode == orderCode {
			return result, true
		}
	}
	return CarrierCancelResult{}, false
}

// CarrierStatusError is returned for non-2xx carrier responses.
type CarrierStatusError struct {
	StatusCode int
	Message    string
}

func (e *CarrierStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("carrier responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("carrier responded with status %d: %s", e.StatusCode, e.Message)
}

type carrierCancelRequest struct {
	OrderCodes []string `json:"order_codes"`
}

type carrierCancelEnvelope struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    []CarrierCancelResult `json:"data"`
}

// CarrierCredentials identify the shop on the carrier API.
type CarrierCredentials struct {
	ShopToken string
	ShopID    string
}

// RestyCarrierGateway talks to the carrier HTTP API.
type RestyCarrierGateway struct {
	client *resty.Client
	tracer trace.Tracer
}

// NewRestyCarrierGateway builds a gateway for baseURL. Requests are never
// retried; timeout bounds each call.
func NewRestyCarrierGateway(baseURL string, credentials CarrierCredentials, timeout time.Duration, tracer trace.Tracer) *RestyCarrierGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Token", credentials.ShopToken).
		SetHeader("ShopId", credentials.ShopID)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
		return nil
	})

	return &RestyCarrierGateway{
		client: client,
		tracer: tracer,
	}
}

// CancelOrders asks the carrier to cancel the given shipments.
func (g *RestyCarrierGateway) CancelOrders(ctx context.Context, orderCodes []string) (*CarrierCancelResponse, error) {
	ctx, span := g.tracer.Start(ctx, "carrier.cancel_orders", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.StringSlice("carrier.order_codes", orderCodes),
		attribute.String("http.request.method", "POST"),
		attribute.String("url.path", carrierCancelPath),
	)

	var envelope carrierCancelEnvelope
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(carrierCancelRequest{OrderCodes: orderCodes}).
		SetResult(&envelope).
		Post(carrierCancelPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "carrier request failed")
		return nil, fmt.Errorf("carrier request failed: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		statusErr := &CarrierStatusError{StatusCode: resp.StatusCode(), Message: resp.String()}
		span.RecordError(statusErr)
		span.SetStatus(codes.Error, "carrier rejected request")
		return nil, statusErr
	}

	return &CarrierCancelResponse{
		Results: envelope.Data,
		Raw:     resp.Body(),
	}, nil
}
