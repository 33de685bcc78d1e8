package handler

import (
	"time"

	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared dependencies embedded by every concrete handler.
//
// Concrete handlers (MemberHandler, CartHandler, ...) embed it to reach the
// config and the logger through *server.Server. Business logic lives in
// the services they are constructed with, never here.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload constrains PReq to a pointer to Req that can validate itself.
//
// Echo binds into pointers, and a request value shared between calls would
// leak fields from one request into the next. With this constraint the
// pipeline allocates a fresh *Req per call:
//
//	req := PReq(new(Req))
//
// Callers never spell the type parameters; they are inferred from the
// endpoint signature, e.g. func(echo.Context, *model.AddProductRequest).
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// HandlerFunc is a typed endpoint.
//
//   - req is already bound from path, query and body and has passed Validate
//   - the returned Res is written by the response handler on success
//   - a returned error is passed on to the global error handler untouched
type HandlerFunc[PReq any, Res any] func(c echo.Context, req PReq) (Res, error)

// HandlerFuncNoContent is a typed endpoint that writes no body.
type HandlerFuncNoContent[PReq any] func(c echo.Context, req PReq) error

// ResponseHandler defines how a successful result is written and how it is
// described to logs and traces.
type ResponseHandler interface {
	// Handle writes the HTTP response for result.
	Handle(c echo.Context, result any) error

	// GetOperation names the handler kind in logs.
	GetOperation() string

	// AddAttributes attaches New Relic attributes that depend on the result.
	// http.status_code is set by the tracing middleware, not here.
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes the result as JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if created, ok := result.(interface{ CreatedID() int64 }); ok {
		txn.AddAttribute("resource.id", created.CreatedID())
	}
}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, _ any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(*newrelic.Transaction, any) {}

// handleRequest is the pipeline shared by every endpoint.
//
// It centralizes:
//
//   - binding and validation (validation.BindAndValidate)
//   - structured logging with the request-scoped logger
//   - New Relic attributes for both phases
//   - timing of validation, handler and total duration
//   - writing the response through responseHandler
//
// Errors from either phase are returned untouched; the global error handler
// turns them into the response body.
func handleRequest(
	c echo.Context,
	req validation.Validatable,
	handler func(c echo.Context) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle adapts a typed endpoint into an echo.HandlerFunc writing JSON with
// status:
//
//	api.POST("/products", Handle(h.Product.AddProduct, http.StatusCreated))
func Handle[Req any, PReq Payload[Req], Res any](handler HandlerFunc[PReq, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent is Handle for endpoints without a response body.
func HandleNoContent[Req any, PReq Payload[Req]](handler HandlerFuncNoContent[PReq], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
