package handlers

import (
	"errors"
	"log"
	"net/http"

	request "pesapal_gateway/internal/adapter/http/dto/request"
	response "pesapal_gateway/internal/adapter/http/dto/response"
	"pesapal_gateway/internal/usecase"
	"pesapal_gateway/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
)

// OrderHandler handles HTTP requests for Pesapal orders.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// SubmitOrder godoc
// @Summary      Submit an order
// @Description  Submits the order to Pesapal and returns the redirect URL for checkout.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.OrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      422    {object}  pkg.HTTPError
// @Failure      502    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var payload request.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[order][handler] invalid payload err=%v", err)
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	log.Printf("[order][handler] submit start merchant_reference=%q", payload.ResolveMerchantReference())

	created, err := h.usecase.SubmitOrder(c.Request.Context(), payload.ToSubmitOrderInput())
	if err != nil {
		log.Printf("[order][handler] submit failed merchant_reference=%q err=%v", payload.ResolveMerchantReference(), err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] submit success order_tracking_id=%s", created.OrderTrackingID)

	c.JSON(http.StatusCreated, response.FromOrder(created))
}

// ListOrders godoc
// @Summary      List orders by merchant reference
// @Tags         orders
// @Produce      json
// @Param        merchant_reference  query     string  true  "Merchant reference"
// @Success      200                 {array}   response.OrderResponse
// @Failure      400                 {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	reference := c.Query("merchant_reference")

	orders, err := h.usecase.ListByMerchantReference(c.Request.Context(), reference)
	if err != nil {
		log.Printf("[order][handler] list failed merchant_reference=%q err=%v", reference, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetOrder godoc
// @Summary      Get a stored order
// @Tags         orders
// @Produce      json
// @Param        order_tracking_id  path      string  true  "Pesapal order tracking id"
// @Success      200                {object}  response.OrderResponse
// @Failure      404                {object}  pkg.HTTPError
// @Router       /orders/{order_tracking_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	trackingID := c.Param("order_tracking_id")

	o, err := h.usecase.GetByTrackingID(c.Request.Context(), trackingID)
	if err != nil {
		log.Printf("[order][handler] get failed order_tracking_id=%s err=%v", trackingID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(o))
}

// GetTransactionStatus godoc
// @Summary      Query the transaction status
// @Description  Asks Pesapal for the current status and records it on the stored order.
// @Tags         orders
// @Produce      json
// @Param        order_tracking_id  path      string  true  "Pesapal order tracking id"
// @Success      200                {object}  response.TransactionStatusResponse
// @Failure      400                {object}  pkg.HTTPError
// @Failure      502                {object}  pkg.HTTPError
// @Router       /orders/{order_tracking_id}/status [get]
func (h *OrderHandler) GetTransactionStatus(c *gin.Context) {
	trackingID := c.Param("order_tracking_id")
	log.Printf("[order][handler] status start order_tracking_id=%s", trackingID)

	status, err := h.usecase.GetTransactionStatus(c.Request.Context(), trackingID)
	if err != nil {
		log.Printf("[order][handler] status failed order_tracking_id=%s err=%v", trackingID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] status success order_tracking_id=%s status=%s", trackingID, status.Status)

	c.JSON(http.StatusOK, response.FromTransactionStatus(status))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderTrackingID):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_TRACKING_ID", "Invalid order_tracking_id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidMerchantReference):
		return pkg.NewDomainErrorSimple("INVALID_MERCHANT_REFERENCE", "Invalid merchant_reference", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderAmount), errors.Is(err, usecase.ErrInvalidCurrency),
		errors.Is(err, usecase.ErrInvalidBillingAddress), errors.Is(err, usecase.ErrMissingCallbackURL):
		return pkg.NewDomainError("INVALID_ORDER_INPUT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotAccepted):
		return pkg.NewDomainError("ORDER_NOT_ACCEPTED", err.Error(), err, http.StatusUnprocessableEntity)
	default:
		return mapGatewayError(err)
	}
}

func mapGatewayError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainError("PAYMENT_PROVIDER_BAD_REQUEST", "Payment provider rejected the request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", err, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayRegistration):
		return pkg.NewDomainError("PAYMENT_PROVIDER_IPN_REGISTRATION_FAILED", "IPN registration failed", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayUnavailable):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
