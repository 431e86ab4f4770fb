package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/pantry/internal/middleware"
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger and database through *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload constrains PReq to a pointer to Req that can be validated, so the
// pipeline can allocate a fresh Req for every request.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// HandlerFunc represents a typed endpoint function that receives a bound and
// validated payload and returns a response value or an error.
type HandlerFunc[Req any, PReq Payload[Req], Res any] func(c echo.Context, req PReq) (Res, error)

// ResponseHandler defines how a successful handler result is written to the
// HTTP response, and how observability attributes are attached for it.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// DataResponseHandler writes the {"data": ...} success envelope.
type DataResponseHandler struct {
	JSONResponseHandler
}

func (h DataResponseHandler) Handle(c echo.Context, result interface{}) error {
	return h.JSONResponseHandler.Handle(c, model.NewDataResponse(result))
}

func (h DataResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil || result == nil {
		return
	}

	switch items := result.(type) {
	case []model.InventoryItem:
		txn.AddAttribute("response.items", len(items))
	case []model.ShoppingItem:
		txn.AddAttribute("response.items", len(items))
	}
}

// handleRequest binds and validates a fresh PReq, runs handler and writes
// the result through responseHandler. Both phases are timed, logged with the
// request logger and recorded on the New Relic transaction when present.
func handleRequest[Req any, PReq Payload[Req]](
	c echo.Context,
	handler func(c echo.Context, req PReq) (interface{}, error),
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
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	req := PReq(new(Req))

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	recordPhase(txn, "validation", validationDuration, err)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	recordPhase(txn, "handler", handlerDuration, err)

	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	if err != nil {
		event := logger.Warn()
		if middleware.ErrorStatus(err) >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	if txn != nil {
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// recordPhase sets <phase>.status and <phase>.duration_ms on txn and
// notices err with its stack.
func recordPhase(txn *newrelic.Transaction, phase string, d time.Duration, err error) {
	if txn == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}

	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", d.Milliseconds())
}

// Handle wraps a typed handler with validation, error handling, logging and
// tracing, writing its result as plain JSON.
//
//	e.GET("/x", handler.Handle(h, myHandlerFn, http.StatusOK))
func Handle[Req any, PReq Payload[Req], Res any](
	h Handler,
	handler HandlerFunc[Req, PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest[Req, PReq](c, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleData is Handle for resource endpoints: the result is wrapped in the
// {"data": ...} envelope.
func HandleData[Req any, PReq Payload[Req], Res any](
	h Handler,
	handler HandlerFunc[Req, PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest[Req, PReq](c, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, DataResponseHandler{JSONResponseHandler{status: status}})
	}
}
