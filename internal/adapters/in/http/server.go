// Package http exposes the ordering core over a JSON API. Handlers translate
// wire payloads into typed commands and queries; the state machine and the
// order lifecycle never see HTTP concerns.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startSessionHandler  commands.StartSessionCommandHandler
	submitInputHandler   commands.SubmitInputCommandHandler
	finalizeOrderHandler commands.FinalizeOrderCommandHandler
	verifyTokenHandler   commands.VerifyTokenCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	// Query handlers
	getAwaitingPickupOrdersHandler queries.GetAwaitingPickupOrdersQueryHandler
	getCustomerOrdersHandler       queries.GetCustomerOrdersQueryHandler

	catalog ports.ProductCatalog
	logger  *zap.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
// The catalog is used to render the product menu inside browsing prompts.
func NewServer(
	startSessionHandler commands.StartSessionCommandHandler,
	submitInputHandler commands.SubmitInputCommandHandler,
	finalizeOrderHandler commands.FinalizeOrderCommandHandler,
	verifyTokenHandler commands.VerifyTokenCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getAwaitingPickupOrdersHandler queries.GetAwaitingPickupOrdersQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	catalog ports.ProductCatalog,
	logger *zap.Logger,
) *Server {
	return &Server{
		startSessionHandler:            startSessionHandler,
		submitInputHandler:             submitInputHandler,
		finalizeOrderHandler:           finalizeOrderHandler,
		verifyTokenHandler:             verifyTokenHandler,
		cancelOrderHandler:             cancelOrderHandler,
		getAwaitingPickupOrdersHandler: getAwaitingPickupOrdersHandler,
		getCustomerOrdersHandler:       getCustomerOrdersHandler,
		catalog:                        catalog,
		logger:                         logger,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/sessions/:identity", s.StartSession)
	api.POST("/sessions/:identity/input", s.SubmitInput)
	api.POST("/sessions/:identity/checkout", s.Checkout)

	api.POST("/orders/verify", s.VerifyToken)
	api.PATCH("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/awaiting-pickup", s.GetAwaitingPickupOrders)

	api.GET("/customers/:identity/orders", s.GetCustomerOrders)

	e.GET("/health", s.Health)
}

// StartSession handles POST /api/v1/sessions/:identity.
// Resumes a live conversation or starts a fresh one.
func (s *Server) StartSession(ctx echo.Context) error {
	cmd, err := commands.NewStartSessionCommand(ctx.Param("identity"))
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.startSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, s.sessionResponse(ctx, result))
}

// SubmitInput handles POST /api/v1/sessions/:identity/input.
// Applies one typed input to the conversation. A rejected input returns 422
// together with the re-prompt so the client can render both.
func (s *Server) SubmitInput(ctx echo.Context) error {
	var body inputRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	input, err := body.toInput()
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSubmitInputCommand(ctx.Param("identity"), input)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.submitInputHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, session.ErrInvalidInput) {
			response := s.sessionResponse(ctx, result)
			response.Error = err.Error()
			return ctx.JSON(http.StatusUnprocessableEntity, response)
		}
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, s.sessionResponse(ctx, result))
}

// Checkout handles POST /api/v1/sessions/:identity/checkout.
// Finalizes the conversation into a priced order with a single-use token.
func (s *Server) Checkout(ctx echo.Context) error {
	cmd, err := commands.NewFinalizeOrderCommand(kernel.NewUUID(), ctx.Param("identity"))
	if err != nil {
		return badRequest(ctx, err)
	}

	placed, err := s.finalizeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID().String()),
		zap.String("customer", placed.Customer()),
		zap.Float64("total", placed.Total()),
	)

	return ctx.JSON(http.StatusCreated, placedOrderResponse{
		OrderID:  placed.ID().String(),
		Total:    placed.Total(),
		Token:    placed.Token(),
		PickupAt: placed.PickupAt(),
	})
}

// VerifyToken handles POST /api/v1/orders/verify.
// Redeems a pickup token; at most one presentation of a token ever succeeds.
func (s *Server) VerifyToken(ctx echo.Context) error {
	var body verifyRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewVerifyTokenCommand(body.Token)
	if err != nil {
		return badRequest(ctx, err)
	}

	completed, err := s.verifyTokenHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.logger.Info("token redeemed",
		zap.String("order_id", completed.ID().String()),
		zap.String("customer", completed.Customer()),
	)

	return ctx.JSON(http.StatusOK, verifiedOrderResponse(completed))
}

// CancelOrder handles PATCH /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID.String()))

	return ctx.NoContent(http.StatusNoContent)
}

// GetAwaitingPickupOrders handles GET /api/v1/orders/awaiting-pickup.
// Returns the counter work queue, oldest order first.
func (s *Server) GetAwaitingPickupOrders(ctx echo.Context) error {
	query := queries.NewGetAwaitingPickupOrdersQuery()

	orders, err := s.getAwaitingPickupOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]awaitingPickupOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = awaitingPickupOrderResponse{
			OrderID:   o.ID.String(),
			Customer:  o.Customer,
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
			PickupAt:  o.PickupAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCustomerOrders handles GET /api/v1/customers/:identity/orders.
// Returns the customer's order history, newest first.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(ctx.Param("identity"))
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]customerOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = customerOrderResponse{
			OrderID:   o.ID.String(),
			Status:    o.Status,
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
			PickupAt:  o.PickupAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// sessionResponse renders a conversation step. Browsing prompts carry an empty
// option list out of the state machine; the menu is filled in here from the
// catalog.
func (s *Server) sessionResponse(ctx echo.Context, result commands.SessionResult) sessionStateResponse {
	prompt := promptResponse{
		Kind:   result.Prompt.Kind.String(),
		Notice: result.Prompt.Notice,
	}

	if result.Prompt.Kind == session.PromptProducts {
		prompt.Options = s.productOptions(ctx)
	} else {
		prompt.Options = make([]promptOptionResponse, len(result.Prompt.Options))
		for i, opt := range result.Prompt.Options {
			prompt.Options[i] = promptOptionResponse{Label: opt.Label, Selected: opt.Selected}
		}
	}

	return sessionStateResponse{
		Identity: result.Identity,
		State:    result.State.String(),
		Prompt:   prompt,
	}
}

func (s *Server) productOptions(ctx echo.Context) []promptOptionResponse {
	products, err := s.catalog.ListAvailable(ctx.Request().Context())
	if err != nil {
		s.logger.Warn("catalog listing failed", zap.Error(err))
		return []promptOptionResponse{}
	}

	options := make([]promptOptionResponse, len(products))
	for i, p := range products {
		options[i] = promptOptionResponse{Label: p.Name, ProductID: p.ID.String()}
	}
	return options
}

// writeError maps domain errors onto HTTP statuses. Conflicting lifecycle
// outcomes (already redeemed, cancelled, wrong status) are 409 so clients can
// distinguish them from unknown resources.
func (s *Server) writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrTokenNotFound), errors.Is(err, errs.ErrObjectNotFound):
		return writeStatus(ctx, http.StatusNotFound, err)
	case errors.Is(err, session.ErrInvalidInput), errors.Is(err, session.ErrMissingField):
		return writeStatus(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, order.ErrAlreadyRedeemed),
		errors.Is(err, order.ErrOrderCancelled),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInvalidSize),
		errors.Is(err, services.ErrInvalidAddOn):
		return writeStatus(ctx, http.StatusConflict, err)
	default:
		s.logger.Error("request failed",
			zap.String("path", ctx.Request().URL.Path),
			zap.Error(err),
		)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, err error) error {
	return writeStatus(ctx, http.StatusBadRequest, err)
}

func writeStatus(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}
