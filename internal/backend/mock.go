package backend

import (
	"context"
	"sync"

	"portfolio-web/internal/domain"
)

// MockClient permite tests sin llamar a un backend real.
type MockClient struct {
	mu       sync.Mutex
	Response domain.ApiResponse
	Err      error
	calls    int
}

func (m *MockClient) FetchPortfolio(ctx context.Context) (domain.ApiResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.Response, m.Err
}

// Set reemplaza la respuesta devuelta en las siguientes llamadas.
func (m *MockClient) Set(resp domain.ApiResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Response = resp
	m.Err = err
}

// Calls devuelve cuantas veces se llamo a FetchPortfolio.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
