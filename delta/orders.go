package delta

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

const ordersPath = "/v2/orders"

// orderPayload is the wire form of an order. Sizes and prices go out as
// exact decimal strings, never float formatting.
type orderPayload struct {
	OrderType  string `json:"order_type"`
	ProductID  int    `json:"product_id"`
	Size       string `json:"size"`
	Side       string `json:"side"`
	LimitPrice string `json:"limit_price,omitempty"`
	StopPrice  string `json:"stop_price,omitempty"`
	Leverage   string `json:"leverage,omitempty"`
	ReduceOnly bool   `json:"reduce_only"`
}

// OrderResult reports one order submission. DryRun means the client is not
// live and nothing was sent to the exchange.
type OrderResult struct {
	Success bool
	DryRun  bool
	OrderID int
}

type orderResponse struct {
	ID int `json:"id"`
}

func dec(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func (c *Client) placeOrder(ctx context.Context, p orderPayload) (OrderResult, error) {
	if !c.live {
		return OrderResult{Success: true, DryRun: true}, nil
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, ordersPath, nil, p, true, &resp); err != nil {
		return OrderResult{}, fmt.Errorf("place %s order: %w", p.OrderType, err)
	}
	return OrderResult{Success: true, OrderID: resp.ID}, nil
}

// PlaceMarket submits a market entry order with the configured leverage.
func (c *Client) PlaceMarket(ctx context.Context, productID int, side string, qty, leverage float64) (OrderResult, error) {
	return c.placeOrder(ctx, orderPayload{
		OrderType: "market",
		ProductID: productID,
		Size:      dec(qty),
		Side:      side,
		Leverage:  strconv.FormatFloat(leverage, 'f', -1, 64),
	})
}

// PlaceLimitReduce submits a reduce-only limit order (take-profit leg).
func (c *Client) PlaceLimitReduce(ctx context.Context, productID int, side string, qty, limitPrice float64) (OrderResult, error) {
	return c.placeOrder(ctx, orderPayload{
		OrderType:  "limit",
		ProductID:  productID,
		Size:       dec(qty),
		Side:       side,
		LimitPrice: dec(limitPrice),
		ReduceOnly: true,
	})
}

// PlaceStopMarket submits a reduce-only stop-market order (stop-loss leg).
func (c *Client) PlaceStopMarket(ctx context.Context, productID int, side string, qty, stopPrice float64) (OrderResult, error) {
	return c.placeOrder(ctx, orderPayload{
		OrderType:  "stop_market",
		ProductID:  productID,
		Size:       dec(qty),
		Side:       side,
		StopPrice:  dec(stopPrice),
		ReduceOnly: true,
	})
}
