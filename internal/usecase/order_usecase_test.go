package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/infrastructure/payments"
	mock_interfaces "pesapal_gateway/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func validInput() SubmitOrderInput {
	return SubmitOrderInput{
		MerchantReference: "REF1",
		Amount:            1000,
		Currency:          "tzs",
		Description:       "Test Mobile Money Payment",
		CallbackURL:       "https://shop.test/callback",
		PaymentMethod:     "MobileMoney",
		BillingAddress:    entities.BillingAddress{PhoneNumber: "255700000000"},
	}
}

func TestOrderUseCase_SubmitOrder_Validations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *SubmitOrderInput)
		want   error
	}{
		{name: "zero amount", mutate: func(in *SubmitOrderInput) { in.Amount = 0 }, want: ErrInvalidOrderAmount},
		{name: "bad currency", mutate: func(in *SubmitOrderInput) { in.Currency = "KE" }, want: ErrInvalidCurrency},
		{name: "no email or phone", mutate: func(in *SubmitOrderInput) { in.BillingAddress = entities.BillingAddress{FirstName: "A"} }, want: ErrInvalidBillingAddress},
		{name: "no callback url", mutate: func(in *SubmitOrderInput) { in.CallbackURL = " " }, want: ErrMissingCallbackURL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewOrderUseCase(nil, nil, "", "")
			in := validInput()
			tc.mutate(&in)
			if _, err := uc.SubmitOrder(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, "", "")
		_, err := uc.SubmitOrder(context.Background(), validInput())
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(nil, gateway, "", "")

		_, err := uc.SubmitOrder(context.Background(), validInput())
		if err == nil || err.Error() != "order repository not configured" {
			t.Fatalf("expected repository not configured error, got %v", err)
		}
	})
}

func TestOrderUseCase_SubmitOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewOrderUseCase(repo, gateway, "", "")

	gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d entities.OrderDetails) (entities.GatewayResponse, error) {
			if d["id"] != "REF1" || d["currency"] != "TZS" || d["amount"] != 1000.0 {
				t.Fatalf("unexpected order details: %v", d)
			}
			if d["payment_method"] != "MobileMoney" || d["callback_url"] != "https://shop.test/callback" {
				t.Fatalf("unexpected order details: %v", d)
			}
			if _, ok := d["notification_id"]; ok {
				t.Fatalf("notification_id must be left to the gateway client when not configured")
			}
			return entities.GatewayResponse{
				"order_tracking_id":  "TRK1",
				"merchant_reference": "REF1",
				"redirect_url":       "https://pay.test/r/TRK1",
				"status":             "200",
			}, nil
		})
	gateway.EXPECT().NotificationID(gomock.Any(), "https://shop.test/callback", false).Return("IPN999", nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) {
			return o, nil
		})

	got, err := uc.SubmitOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OrderTrackingID != "TRK1" || got.RedirectURL != "https://pay.test/r/TRK1" || got.Status != entities.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.NotificationID != "IPN999" {
		t.Fatalf("expected the injected notification id to be stored, got %q", got.NotificationID)
	}
	var raw map[string]any
	if err := json.Unmarshal(got.GatewayPayloadRaw, &raw); err != nil || raw["order_tracking_id"] != "TRK1" {
		t.Fatalf("gateway payload not kept: %s", got.GatewayPayloadRaw)
	}
}

func TestOrderUseCase_SubmitOrder_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewOrderUseCase(repo, gateway, "https://shop.test/default", "IPN_ENV")

	in := validInput()
	in.MerchantReference = ""
	in.Description = ""
	in.CallbackURL = ""

	gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d entities.OrderDetails) (entities.GatewayResponse, error) {
			ref, _ := d["id"].(string)
			if !strings.HasPrefix(ref, "ORD-") {
				t.Fatalf("expected generated reference, got %v", d["id"])
			}
			if d["description"] != "Order "+ref {
				t.Fatalf("unexpected description: %v", d["description"])
			}
			if d["callback_url"] != "https://shop.test/default" || d["notification_id"] != "IPN_ENV" {
				t.Fatalf("defaults not applied: %v", d)
			}
			return entities.GatewayResponse{"order_tracking_id": "TRK2", "redirect_url": "https://pay.test/r/TRK2"}, nil
		})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil })

	got, err := uc.SubmitOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NotificationID != "IPN_ENV" || !strings.HasPrefix(got.MerchantReference, "ORD-") {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestOrderUseCase_SubmitOrder_NotificationIDReadBackFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewOrderUseCase(repo, gateway, "", "")

	gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).Return(entities.GatewayResponse{
		"order_tracking_id": "TRK1",
		"redirect_url":      "https://pay.test/r/TRK1",
	}, nil)
	gateway.EXPECT().NotificationID(gomock.Any(), gomock.Any(), false).Return("", errors.New("store down"))
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil })

	got, err := uc.SubmitOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("read-back failure must not fail the submit: %v", err)
	}
	if got.OrderTrackingID != "TRK1" || got.NotificationID != "" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestOrderUseCase_SubmitOrder_DescriptionTruncatedOnRunes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewOrderUseCase(repo, gateway, "", "IPN_ENV")

	in := validInput()
	in.Description = strings.Repeat("a", maxDescriptionLength-1) + "ééé"

	gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d entities.OrderDetails) (entities.GatewayResponse, error) {
			desc, _ := d["description"].(string)
			if !utf8.ValidString(desc) || utf8.RuneCountInString(desc) != maxDescriptionLength {
				t.Fatalf("bad truncation: %q", desc)
			}
			if !strings.HasSuffix(desc, "é") {
				t.Fatalf("expected last rune kept whole, got %q", desc)
			}
			return entities.GatewayResponse{"order_tracking_id": "TRK3", "redirect_url": "https://pay.test/r/TRK3"}, nil
		})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil })

	if _, err := uc.SubmitOrder(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderUseCase_SubmitOrder_NotAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewOrderUseCase(repo, gateway, "", "")

	gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).Return(entities.GatewayResponse{
		"error": map[string]any{"message": "amount too low"},
	}, nil)

	_, err := uc.SubmitOrder(context.Background(), validInput())
	if !errors.Is(err, ErrOrderNotAccepted) || !strings.Contains(err.Error(), "amount too low") {
		t.Fatalf("expected ErrOrderNotAccepted with message, got %v", err)
	}
}

func TestOrderUseCase_SubmitOrder_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "authentication", err: &payments.AuthenticationError{Message: "Invalid consumer key"}, want: ErrPaymentGatewayUnauthorized},
		{name: "http 401", err: &payments.GatewayError{StatusCode: 401, Message: "Unauthorized"}, want: ErrPaymentGatewayUnauthorized},
		{name: "registration", err: &payments.RegistrationError{URL: "u", Message: "x"}, want: ErrPaymentGatewayRegistration},
		{name: "embedded failure", err: &payments.GatewayError{StatusCode: 200, Message: "bad request"}, want: ErrPaymentGatewayBadRequest},
		{name: "server error", err: &payments.GatewayError{StatusCode: 503, Message: "down"}, want: ErrPaymentGatewayUnavailable},
		{name: "transport", err: &payments.TransportError{Endpoint: "/x", Err: errors.New("refused")}, want: ErrPaymentGatewayUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIOrderRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewOrderUseCase(repo, gateway, "", "")

			gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			_, err := uc.SubmitOrder(context.Background(), validInput())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("original error lost: %v", err)
			}
		})
	}

	t.Run("unknown gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(repo, gateway, "", "")

		gateway.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		_, err := uc.SubmitOrder(context.Background(), validInput())
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestOrderUseCase_GetTransactionStatus(t *testing.T) {
	t.Run("invalid tracking id", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, "", "")
		if _, err := uc.GetTransactionStatus(context.Background(), " "); !errors.Is(err, ErrInvalidOrderTrackingID) {
			t.Fatalf("expected ErrInvalidOrderTrackingID, got %v", err)
		}
	})

	t.Run("updates stored order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(repo, gateway, "", "")

		payload := entities.GatewayResponse{"payment_status_description": "Completed", "status": "200"}
		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK1").Return(payload, nil)
		repo.EXPECT().GetByTrackingID(gomock.Any(), "TRK1").Return(entities.Order{OrderTrackingID: "TRK1", Status: entities.OrderStatusPending}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "TRK1", entities.OrderStatusCompleted, gomock.Any()).Return(entities.Order{OrderTrackingID: "TRK1", Status: entities.OrderStatusCompleted}, nil)

		got, err := uc.GetTransactionStatus(context.Background(), "TRK1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.OrderStatusCompleted || got.Payload["payment_status_description"] != "Completed" {
			t.Fatalf("unexpected status: %+v", got)
		}
	})

	t.Run("unknown order is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(repo, gateway, "", "")

		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK9").Return(entities.GatewayResponse{"payment_status_description": "Failed"}, nil)
		repo.EXPECT().GetByTrackingID(gomock.Any(), "TRK9").Return(entities.Order{}, nil)

		got, err := uc.GetTransactionStatus(context.Background(), "TRK9")
		if err != nil || got.Status != entities.OrderStatusFailed {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})

	t.Run("unchanged status skips update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(repo, gateway, "", "")

		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK1").Return(entities.GatewayResponse{"payment_status_description": ""}, nil)
		repo.EXPECT().GetByTrackingID(gomock.Any(), "TRK1").Return(entities.Order{OrderTrackingID: "TRK1", Status: entities.OrderStatusPending}, nil)

		if _, err := uc.GetTransactionStatus(context.Background(), "TRK1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewOrderUseCase(nil, gateway, "", "")

		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK1").Return(nil, &payments.GatewayError{StatusCode: 404, Message: "Request failed"})

		if _, err := uc.GetTransactionStatus(context.Background(), "TRK1"); !errors.Is(err, ErrPaymentGatewayBadRequest) {
			t.Fatalf("expected ErrPaymentGatewayBadRequest, got %v", err)
		}
	})
}

func TestOrderUseCase_GetByTrackingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	uc := NewOrderUseCase(repo, nil, "", "")

	repo.EXPECT().GetByTrackingID(gomock.Any(), "missing").Return(entities.Order{}, nil)
	if _, err := uc.GetByTrackingID(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	repo.EXPECT().GetByTrackingID(gomock.Any(), "TRK1").Return(entities.Order{OrderTrackingID: "TRK1"}, nil)
	got, err := uc.GetByTrackingID(context.Background(), "TRK1")
	if err != nil || got.OrderTrackingID != "TRK1" {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}
}

func TestOrderUseCase_ListByMerchantReference(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, "", "")
		if _, err := uc.ListByMerchantReference(context.Background(), "  "); !errors.Is(err, ErrInvalidMerchantReference) {
			t.Fatalf("expected ErrInvalidMerchantReference, got %v", err)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, "", "")

		older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().ListByMerchantReference(gomock.Any(), "REF1").Return([]entities.Order{
			{OrderTrackingID: "TRK1", CreatedAt: older},
			{OrderTrackingID: "TRK2", CreatedAt: older.Add(time.Hour)},
		}, nil)

		got, err := uc.ListByMerchantReference(context.Background(), " REF1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].OrderTrackingID != "TRK2" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, "", "")

		repo.EXPECT().ListByMerchantReference(gomock.Any(), "REF1").Return(nil, errors.New("throttled"))
		if _, err := uc.ListByMerchantReference(context.Background(), "REF1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
