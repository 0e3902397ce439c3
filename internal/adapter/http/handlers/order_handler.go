package handlers

import (
	"errors"
	"net/http"

	request "atelier_lag/internal/adapter/http/dto/request"
	response "atelier_lag/internal/adapter/http/dto/response"
	"atelier_lag/internal/usecase"
	"atelier_lag/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	errInvalidOrderPayload  = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Invalid status payload", http.StatusBadRequest)
)

// OrderHandler handles HTTP requests for engraving orders and their
// production board.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders godoc
// @Summary      List orders
// @Description  in_progress: neither done nor cancelled. finished: done or cancelled. Sorted by deadline.
// @Tags         orders
// @Produce      json
// @Param        view  query     string  false  "in_progress | finished"
// @Success      200   {array}   response.OrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context(), usecase.ListView(c.Query("view")))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetBoard godoc
// @Summary      Production board of an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.BoardResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id}/stages [get]
func (h *OrderHandler) GetBoard(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromBoard(order))
}

// UpdateStatus godoc
// @Summary      Request a stage for an order
// @Description  Applies the workflow transition for the clicked stage. Requests that match no transition return 200 with rule "noop".
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        status  body      request.UpdateStatusRequest  true  "Order id and stage"
// @Success      200     {object}  response.StatusUpdateResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /orders/statut [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	orderID := payload.ResolveOrderID()
	stage := payload.ResolveStage()
	if orderID == "" || stage == "" {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.UpdateStatus(c.Request.Context(), orderID, stage)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromStatusUpdate(res))
}

// DuplicateOrder godoc
// @Summary      Duplicate an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      201  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id}/duplicate [post]
func (h *OrderHandler) DuplicateOrder(c *gin.Context) {
	order, err := h.usecase.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// UpdateOrder godoc
// @Summary      Edit an order
// @Description  Partial edit of name, description, quantity, units completed, paid flag, deadline and order date. The status is changed through PUT /orders/statut only.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Order id"
// @Param        order  body      request.UpdateOrderRequest  true  "Fields to change"
// @Success      200    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var payload request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateOrder(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// DeleteOrder godoc
// @Summary      Delete an order
// @Tags         orders
// @Param        id   path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.usecase.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeOrderError(c *gin.Context, err error) {
	appErr := mapOrderError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("[order][handler] request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidListView):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProductName), errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidUnits):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStage):
		return pkg.NewDomainErrorSimple("INVALID_STAGE", "Unknown stage", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderConflict):
		return pkg.NewDomainErrorSimple("ORDER_CONFLICT", "Order was modified concurrently, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderBusy):
		return pkg.NewDomainErrorSimple("ORDER_BUSY", "Order is being updated, retry shortly", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
