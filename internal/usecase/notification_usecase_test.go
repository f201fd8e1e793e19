package usecase

import (
	"context"
	"errors"
	"testing"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/infrastructure/payments"
	mock_interfaces "pesapal_gateway/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNotificationUseCase_RegisterIPN(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		uc := NewNotificationUseCase(nil, nil)
		for _, raw := range []string{"", "callback.php", "ftp://shop.test/ipn", "https://"} {
			if _, err := uc.RegisterIPN(context.Background(), raw, false); !errors.Is(err, ErrInvalidIPNURL) {
				t.Fatalf("url %q: expected ErrInvalidIPNURL, got %v", raw, err)
			}
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewNotificationUseCase(gateway, nil)

		gateway.EXPECT().NotificationID(gomock.Any(), "https://shop.test/ipn", true).Return("IPN999", nil)

		id, err := uc.RegisterIPN(context.Background(), " https://shop.test/ipn ", true)
		if err != nil || id != "IPN999" {
			t.Fatalf("expected IPN999, got %q err=%v", id, err)
		}
	})

	t.Run("registration error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewNotificationUseCase(gateway, nil)

		gateway.EXPECT().NotificationID(gomock.Any(), "https://shop.test/ipn", false).Return("", &payments.RegistrationError{URL: "https://shop.test/ipn", Message: "ipn_id missing from response"})

		if _, err := uc.RegisterIPN(context.Background(), "https://shop.test/ipn", false); !errors.Is(err, ErrPaymentGatewayRegistration) {
			t.Fatalf("expected ErrPaymentGatewayRegistration, got %v", err)
		}
	})
}

func TestNotificationUseCase_HandleCallback(t *testing.T) {
	evt := entities.IPNEvent{
		OrderTrackingID:        "TRK1",
		OrderMerchantReference: "REF1",
		OrderNotificationType:  "IPNCHANGE",
	}

	t.Run("missing tracking id", func(t *testing.T) {
		uc := NewNotificationUseCase(nil, nil)
		ack := uc.HandleCallback(context.Background(), entities.IPNEvent{OrderNotificationType: "IPNCHANGE"})
		if ack.Status != 500 || ack.OrderNotificationType != "IPNCHANGE" {
			t.Fatalf("unexpected ack: %+v", ack)
		}
	})

	t.Run("status fetched and recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		orders := NewOrderUseCase(repo, gateway, "", "")
		uc := NewNotificationUseCase(gateway, orders)

		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK1").Return(entities.GatewayResponse{"payment_status_description": "Completed", "status": "200"}, nil)
		repo.EXPECT().GetByTrackingID(gomock.Any(), "TRK1").Return(entities.Order{OrderTrackingID: "TRK1", Status: entities.OrderStatusPending}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "TRK1", entities.OrderStatusCompleted, gomock.Any()).Return(entities.Order{}, nil)

		ack := uc.HandleCallback(context.Background(), evt)
		want := entities.IPNAck{OrderNotificationType: "IPNCHANGE", OrderTrackingID: "TRK1", OrderMerchantReference: "REF1", Status: 200}
		if ack != want {
			t.Fatalf("unexpected ack: %+v", ack)
		}
	})

	t.Run("status lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		orders := NewOrderUseCase(nil, gateway, "", "")
		uc := NewNotificationUseCase(gateway, orders)

		gateway.EXPECT().GetTransactionStatus(gomock.Any(), "TRK1").Return(nil, &payments.TransportError{Endpoint: "/x", Err: errors.New("timeout")})

		if ack := uc.HandleCallback(context.Background(), evt); ack.Status != 500 {
			t.Fatalf("expected 500 ack, got %+v", ack)
		}
	})
}
