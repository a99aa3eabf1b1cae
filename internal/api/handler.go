package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jbrucker/stock-price-ws/internal/domain/dto"
	"github.com/jbrucker/stock-price-ws/internal/middleware"
	"github.com/jbrucker/stock-price-ws/internal/serializer"
	"github.com/jbrucker/stock-price-ws/internal/service"
	"github.com/jbrucker/stock-price-ws/internal/stockinfo"
)

// protobufAccepts are the Accept-header tokens that select the binary
// response format. Matching is a case-insensitive substring check; anything
// else falls back to JSON. Responses always use serializer.MediaTypeProtobuf.
var protobufAccepts = []string{
	"application/x-protobuf",
	"application/protobuf",
	"application/vnd.google.protobuf",
}

// Handler provides the HTTP handlers for the stock price endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters.
//   - Negotiate the response format from the Accept header.
//   - Invoke the service layer and translate its outcomes into HTTP status
//     codes and bodies. This is the only place errors become status codes.
type Handler struct {
	svc          service.StockService
	ser          *serializer.Serializer
	defaultLimit int
}

// NewHandler constructs a Handler.
//
// Parameters:
//   - svc: the stock retrieval service.
//   - ser: the serializer holding the protobuf capability flag.
//   - defaultLimit: window size used when a request omits ?limit.
func NewHandler(svc service.StockService, ser *serializer.Serializer, defaultLimit int) *Handler {
	return &Handler{svc: svc, ser: ser, defaultLimit: defaultLimit}
}

// wantsProtobuf reports whether the Accept header asks for the binary
// format.
func wantsProtobuf(accept string) bool {
	accept = strings.ToLower(accept)
	for _, t := range protobufAccepts {
		if strings.Contains(accept, t) {
			return true
		}
	}
	return false
}

// GetStock handles GET /stock/{symbol} requests.
//
// Query Parameters:
//   - limit (int, optional): number of most recent trading days, >= 1.
//   - metadata (bool, optional): include company metadata (JSON only).
//
// Responses:
//   - 200 OK: price history, JSON or protobuf per the Accept header.
//   - 400 Bad Request: invalid limit or metadata parameter.
//   - 404 Not Found: unknown or delisted symbol.
//   - 500 Internal Server Error: provider or serialization failure.
//   - 501 Not Implemented: protobuf requested but disabled in this deployment.
//
// GetStock godoc
// @Summary      Get daily price history for a symbol
// @Description  Returns OHLCV history for the most recent trading days. The Accept header selects JSON or protobuf.
// @Tags         stock
// @Produce      json
// @Produce      application/x-protobuf
// @Param        symbol    path      string  true   "Ticker symbol" example(AAPL)
// @Param        limit     query     int     false  "Number of most recent trading days (default 100)" example(30)
// @Param        metadata  query     bool    false  "Include company metadata (JSON only)" example(false)
// @Param        Accept    header    string  false  "Response format negotiation" example(application/x-protobuf)
// @Success      200       {object}  models.StockResult     "Success"
// @Failure      400       {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse      "Not Found"
// @Failure      500       {object}  dto.ErrorResponse      "Internal Error"
// @Failure      501       {object}  dto.ErrorResponse      "Protobuf Unavailable"
// @Router       /stock/{symbol} [get]
func (h *Handler) GetStock(c *gin.Context) {
	symbol, limit, ok := h.stockParams(c)
	if !ok {
		return
	}

	includeMetadata := false
	if v := c.Query("metadata"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "metadata must be a boolean", err)
			return
		}
		includeMetadata = parsed
	}

	binary := wantsProtobuf(c.GetHeader("Accept"))

	// Capability check happens before any provider call: an unavailable
	// format is a deployment condition, not a data error.
	if binary && !h.ser.ProtobufEnabled() {
		c.JSON(http.StatusNotImplemented, dto.NewErrorResponse(
			"Protobuf support is not available. Set PROTOBUF_ENABLED=true to serve binary responses.", nil))
		return
	}

	// The binary schema has no metadata fields, so skip the lookup there.
	result, err := h.svc.History(c.Request.Context(), symbol, limit, includeMetadata && !binary)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if binary {
		body, err := h.ser.MarshalProtobuf(result)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, serializer.MediaTypeProtobuf, body)
		return
	}

	body, err := h.ser.MarshalJSON(result)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, serializer.MediaTypeJSON, body)
}

// GetStockAnalysis handles GET /stock/{symbol}/analysis requests.
//
// GetStockAnalysis godoc
// @Summary      Get summary statistics for a symbol
// @Description  Returns period, closing-price and volume statistics over the most recent trading days.
// @Tags         stock
// @Produce      json
// @Param        symbol  path      string  true   "Ticker symbol" example(AAPL)
// @Param        limit   query     int     false  "Number of most recent trading days (default 100)" example(30)
// @Success      200     {object}  models.PriceAnalysis  "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse     "Not Found"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Router       /stock/{symbol}/analysis [get]
func (h *Handler) GetStockAnalysis(c *gin.Context) {
	symbol, limit, ok := h.stockParams(c)
	if !ok {
		return
	}

	out, err := h.svc.Analyze(c.Request.Context(), symbol, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// stockParams validates the symbol path parameter and the limit query
// parameter. Validation failures are rejected before any provider call.
func (h *Handler) stockParams(c *gin.Context) (symbol string, limit int, ok bool) {
	symbol = strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol is required", nil)
		return "", 0, false
	}

	limit = h.defaultLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be an integer", err)
			return "", 0, false
		}
		limit = parsed
	}
	if limit < 1 {
		middleware.AbortWithError(c, http.StatusBadRequest, "limit must be >= 1", nil)
		return "", 0, false
	}
	return symbol, limit, true
}

// writeError maps service errors to HTTP status codes. StockInfo and the
// serializer know nothing about HTTP; this is the single mapping point.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stockinfo.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("symbol not found", err))
	case errors.Is(err, serializer.ErrUnavailable):
		c.JSON(http.StatusNotImplemented, dto.NewErrorResponse(
			"Protobuf support is not available. Set PROTOBUF_ENABLED=true to serve binary responses.", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch stock prices", err))
	}
}
