package api

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// SonicSerializer replaces the default encoding/json serializer. The stats
// endpoints return thousands of rows, sonic keeps them cheap.
type SonicSerializer struct{}

func NewSonicSerializer() *SonicSerializer {
	return &SonicSerializer{}
}

func (s *SonicSerializer) Serialize(ctx echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigDefault.NewEncoder(ctx.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *SonicSerializer) Deserialize(ctx echo.Context, i interface{}) error {
	err := sonic.ConfigDefault.NewDecoder(ctx.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to decode json: %v", err))
	}
	return nil
}
