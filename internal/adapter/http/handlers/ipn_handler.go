package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "pesapal_gateway/internal/adapter/http/dto/request"
	response "pesapal_gateway/internal/adapter/http/dto/response"
	"pesapal_gateway/internal/usecase"
	"pesapal_gateway/pkg"

	"github.com/gin-gonic/gin"
)

// IPNHandler registers the IPN URL and receives Pesapal's notifications.

type IPNHandler struct {
	usecase usecase.INotificationUseCase
}

func NewIPNHandler(uc usecase.INotificationUseCase) *IPNHandler {
	return &IPNHandler{usecase: uc}
}

// RegisterIPN godoc
// @Summary      Register the IPN URL
// @Description  Returns the cached notification id, registering the URL with Pesapal when none is cached or force_refresh is set.
// @Tags         ipn
// @Accept       json
// @Produce      json
// @Param        ipn  body      request.RegisterIPNRequest  true  "IPN URL"
// @Success      200  {object}  response.RegisterIPNResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /ipn [post]
func (h *IPNHandler) RegisterIPN(c *gin.Context) {
	var payload request.RegisterIPNRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	id, err := h.usecase.RegisterIPN(c.Request.Context(), payload.URL, payload.ForceRefresh)
	if err != nil {
		log.Printf("[ipn][handler] register failed url=%s err=%v", payload.URL, err)
		appErr := mapIPNError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.RegisterIPNResponse{URL: strings.TrimSpace(payload.URL), NotificationID: id})
}

// Callback godoc
// @Summary      Receive an IPN
// @Description  Pesapal calls this URL on every payment status change. The body's status is 200 once the status was fetched and recorded, 500 otherwise.
// @Tags         ipn
// @Produce      json
// @Param        OrderTrackingId         query     string  true   "Order tracking id"
// @Param        OrderMerchantReference  query     string  false  "Merchant reference"
// @Param        OrderNotificationType   query     string  false  "IPNCHANGE, CALLBACKURL or RECURRING"
// @Success      200                     {object}  entities.IPNAck
// @Router       /ipn/callback [get]
// @Router       /ipn/callback [post]
func (h *IPNHandler) Callback(c *gin.Context) {
	var payload request.IPNCallbackRequest
	if err := c.ShouldBindQuery(&payload); err != nil {
		log.Printf("[ipn][handler] query bind failed err=%v", err)
	}
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var body request.IPNCallbackRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			log.Printf("[ipn][handler] body bind failed err=%v", err)
		} else {
			payload = mergeCallback(payload, body)
		}
	}

	ack := h.usecase.HandleCallback(c.Request.Context(), payload.ToEvent())
	c.JSON(http.StatusOK, ack)
}

func mergeCallback(query, body request.IPNCallbackRequest) request.IPNCallbackRequest {
	if body.OrderTrackingID != "" {
		query.OrderTrackingID = body.OrderTrackingID
	}
	if body.OrderMerchantReference != "" {
		query.OrderMerchantReference = body.OrderMerchantReference
	}
	if body.OrderNotificationType != "" {
		query.OrderNotificationType = body.OrderNotificationType
	}
	return query
}

func mapIPNError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidIPNURL):
		return pkg.NewDomainErrorSimple("INVALID_IPN_URL", "IPN url must be an absolute http(s) URL", http.StatusBadRequest)
	default:
		return mapGatewayError(err)
	}
}
