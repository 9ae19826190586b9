package backend

import (
	"context"

	"github.com/classlog/console/core/academia"
)

func (c *Client) Resumen(ctx context.Context, token string) (academia.ResumenDashboard, error) {
	var out academia.ResumenDashboard
	err := c.get(ctx, "/api/dashboard/resumen", nil, token, &out)
	return out, err
}
