package delta

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type walletBalance struct {
	AssetSymbol      string    `json:"asset_symbol"`
	AvailableBalance flexFloat `json:"available_balance"`
	Balance          flexFloat `json:"balance"`
}

// BalanceUSD returns the available account balance in dollars, preferring a
// USD/USDT/USDC wallet and falling back to the first wallet entry.
func (c *Client) BalanceUSD(ctx context.Context) (float64, error) {
	var result []walletBalance
	if err := c.do(ctx, http.MethodGet, "/v2/wallet/balances", nil, nil, true, &result); err != nil {
		return 0, fmt.Errorf("fetch balances: %w", err)
	}

	for _, w := range result {
		switch strings.ToUpper(w.AssetSymbol) {
		case "USD", "USDT", "USDC":
			if w.AvailableBalance != 0 {
				return float64(w.AvailableBalance), nil
			}
			return float64(w.Balance), nil
		}
	}
	if len(result) > 0 {
		return float64(result[0].AvailableBalance), nil
	}
	return 0, nil
}

// Position is one open exchange position. Older API versions report the
// product under "id" and the size under "quantity", so both spellings are
// accepted.
type Position struct {
	ProductID int       `json:"product_id"`
	ID        int       `json:"id"`
	Size      flexFloat `json:"size"`
	Quantity  flexFloat `json:"quantity"`
}

func (p Position) product() int {
	if p.ProductID != 0 {
		return p.ProductID
	}
	return p.ID
}

func (p Position) size() float64 {
	if p.Size != 0 {
		return float64(p.Size)
	}
	return float64(p.Quantity)
}

// OpenPositions lists open positions, trying the margined endpoint first and
// falling back to the plain positions endpoint.
func (c *Client) OpenPositions(ctx context.Context) ([]Position, error) {
	var lastErr error
	for _, path := range []string{"/v2/positions/margined", "/v2/positions"} {
		var result []Position
		if err := c.do(ctx, http.MethodGet, path, nil, nil, true, &result); err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}
	return nil, fmt.Errorf("fetch positions: %w", lastErr)
}

// HasOpenPosition reports whether a nonzero position exists for the product.
func (c *Client) HasOpenPosition(ctx context.Context, productID int) (bool, error) {
	positions, err := c.OpenPositions(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range positions {
		size := p.size()
		if size < 0 {
			size = -size
		}
		if p.product() == productID && size > 0 {
			return true, nil
		}
	}
	return false, nil
}
