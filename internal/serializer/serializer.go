// Package serializer renders a StockResult into its wire formats: a JSON
// document or a protobuf-encoded StockPrices message (protos/stock.proto).
// Both formats are derived from the same in-memory value; no format triggers
// its own data fetch.
package serializer

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

// Media types served by the API. Requests are negotiated against all three
// protobuf aliases; responses always use MediaTypeProtobuf.
const (
	MediaTypeJSON     = "application/json"
	MediaTypeProtobuf = "application/x-protobuf"
)

// ErrUnavailable reports that the binary format is switched off in this
// deployment. The HTTP layer maps it to 501.
var ErrUnavailable = errors.New("protobuf support not available")

// stock.proto field numbers.
const (
	recDate        = 1
	recOpen        = 2
	recHigh        = 3
	recLow         = 4
	recClose       = 5
	recVolume      = 6
	recDividends   = 7
	recStockSplits = 8

	msgSymbol      = 1
	msgRetrievedAt = 2
	msgPrices      = 3
)

// Serializer renders StockResult values. The protobuf capability is fixed
// at construction time, resolved once from configuration at startup.
type Serializer struct {
	protobufEnabled bool
}

// New creates a Serializer. protobufEnabled controls whether the binary
// format is available.
func New(protobufEnabled bool) *Serializer {
	return &Serializer{protobufEnabled: protobufEnabled}
}

// ProtobufEnabled reports whether the binary format can be served.
func (s *Serializer) ProtobufEnabled() bool { return s.protobufEnabled }

// MarshalJSON renders the result as a JSON document. Optional price fields
// (dividends, stock_splits) and the metadata object are omitted entirely
// when absent.
func (s *Serializer) MarshalJSON(r *models.StockResult) ([]byte, error) {
	return json.Marshal(r)
}

// MarshalProtobuf renders the result as a StockPrices protobuf message.
// It fails with ErrUnavailable when the capability is switched off.
func (s *Serializer) MarshalProtobuf(r *models.StockResult) ([]byte, error) {
	if !s.protobufEnabled {
		return nil, ErrUnavailable
	}

	var b []byte
	b = protowire.AppendTag(b, msgSymbol, protowire.BytesType)
	b = protowire.AppendString(b, r.Symbol)
	b = protowire.AppendTag(b, msgRetrievedAt, protowire.BytesType)
	b = protowire.AppendString(b, r.RetrievedAt.Format(time.RFC3339Nano))
	for _, p := range r.Prices {
		rec := appendPriceRecord(nil, p)
		b = protowire.AppendTag(b, msgPrices, protowire.BytesType)
		b = protowire.AppendBytes(b, rec)
	}
	return b, nil
}

func appendPriceRecord(b []byte, p models.PriceBar) []byte {
	b = protowire.AppendTag(b, recDate, protowire.BytesType)
	b = protowire.AppendString(b, p.Date)
	b = appendDouble(b, recOpen, p.Open)
	b = appendDouble(b, recHigh, p.High)
	b = appendDouble(b, recLow, p.Low)
	b = appendDouble(b, recClose, p.Close)
	b = protowire.AppendTag(b, recVolume, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Volume))
	if p.Dividends != nil {
		b = appendDouble(b, recDividends, *p.Dividends)
	}
	if p.StockSplits != nil {
		b = appendDouble(b, recStockSplits, *p.StockSplits)
	}
	return b
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// StockPrices mirrors the protos/stock.proto StockPrices message for
// decoding. RetrievedAt stays a string because the wire field is a string.
type StockPrices struct {
	Symbol      string
	RetrievedAt string
	Prices      []models.PriceBar
}

// UnmarshalStockPrices decodes a StockPrices protobuf message. Used by
// tests and by clients of the binary format.
func UnmarshalStockPrices(b []byte) (*StockPrices, error) {
	out := &StockPrices{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == msgSymbol && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			out.Symbol = v
			b = b[n:]
		case num == msgRetrievedAt && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			out.RetrievedAt = v
			b = b[n:]
		case num == msgPrices && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			rec, err := unmarshalPriceRecord(v)
			if err != nil {
				return nil, err
			}
			out.Prices = append(out.Prices, rec)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return out, nil
}

func unmarshalPriceRecord(b []byte) (models.PriceBar, error) {
	var rec models.PriceBar
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return rec, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == recDate && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			rec.Date = v
			b = b[n:]
		case typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			f := math.Float64frombits(v)
			switch num {
			case recOpen:
				rec.Open = f
			case recHigh:
				rec.High = f
			case recLow:
				rec.Low = f
			case recClose:
				rec.Close = f
			case recDividends:
				d := f
				rec.Dividends = &d
			case recStockSplits:
				sp := f
				rec.StockSplits = &sp
			}
			b = b[n:]
		case num == recVolume && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			rec.Volume = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return rec, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return rec, nil
}
