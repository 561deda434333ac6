package orderclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"pick-route-service/internal/domain"
	"pick-route-service/internal/platform/obs"
)

const partsPath = "/api/v1/order/navigation/parts"

// Client implements PartLocationSource against the order server.
//
// The order server owns orders and their items; this client only asks it
// which shelf each ordered part sits on. The client is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	retry   RetryPolicy
}

func New(baseURL string, retry RetryPolicy) (*Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second}, retry)
}

func NewWithHTTPClient(baseURL string, session *http.Client, retry RetryPolicy) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("order server url is empty")
	}
	if session == nil {
		return nil, errors.New("order client: http client is nil")
	}
	if err := retry.validate(); err != nil {
		return nil, fmt.Errorf("order client: %w", err)
	}

	return &Client{session: session, baseURL: baseURL, retry: retry}, nil
}

type partsRequest struct {
	OrderNumbers []string `json:"orderNumbers"`
}

type partsData struct {
	PartLocations []partLocationDTO `json:"partLocations"`
}

type partLocationDTO struct {
	Location    string  `json:"location"`
	PartName    string  `json:"partName"`
	OrderNumber string  `json:"orderNumber"`
	PartID      int64   `json:"partId"`
	WeightKg    float64 `json:"weightKg"`
}

// ListPartLocations fetches the part locations of the given orders.
func (c *Client) ListPartLocations(
	ctx context.Context,
	orderNumbers []string,
) (_ []domain.PartLocation, err error) {
	defer obs.Time(ctx, "parts.http.ListPartLocations")(&err)

	if len(orderNumbers) == 0 {
		return nil, errors.New("list part locations: order numbers must not be empty")
	}

	var data partsData
	if err := c.post(ctx, partsPath, partsRequest{OrderNumbers: orderNumbers}, &data); err != nil {
		return nil, fmt.Errorf("list part locations: %w", err)
	}

	return lo.Map(data.PartLocations, func(p partLocationDTO, _ int) domain.PartLocation {
		return domain.PartLocation{
			Location:    p.Location,
			PartID:      p.PartID,
			PartName:    p.PartName,
			OrderNumber: p.OrderNumber,
			WeightKg:    p.WeightKg,
		}
	}), nil
}
