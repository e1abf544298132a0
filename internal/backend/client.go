package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-web/internal/domain"
)

// PortfolioPath es el unico endpoint consumido por la vista.
const PortfolioPath = "/api/portfolio/"

// ErrTransport agrupa fallos de red, status no-2xx y cuerpos que no se pueden parsear.
var ErrTransport = errors.New("portfolio transport error")

// Client define la interfaz para obtener el payload del portfolio.
type Client interface {
	FetchPortfolio(ctx context.Context) (domain.ApiResponse, error)
}

// HTTPClient implementa Client contra el backend HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a baseURL. timeout <= 0 usa el default del transporte.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) FetchPortfolio(ctx context.Context) (domain.ApiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PortfolioPath, nil)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("%w: do request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ApiResponse{}, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("portfolio backend error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)),
		)
		return domain.ApiResponse{}, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}

	// null, arrays o escalares no son un ApiResponse.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.ApiResponse{}, fmt.Errorf("%w: response body is not a JSON object", ErrTransport)
	}

	var out domain.ApiResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return domain.ApiResponse{}, fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}
	return out, nil
}
