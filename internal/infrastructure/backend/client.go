package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tu-usuario/estoque-web/internal/domain"
	"github.com/tu-usuario/estoque-web/internal/domain/entity"
	"github.com/tu-usuario/estoque-web/pkg/config"
)

// ── Porta (interface) ──────────────────────────────────────────────────────────

// Client define a porta de saída para a API REST de inventário.
// A implementação concreta usa HTTP/JSON; para testes se pode injetar um mock.
type Client interface {
	// ListProducts lista produtos, opcionalmente filtrados por substring do nome.
	// Termo vazio omite o parâmetro search (conjunto completo).
	ListProducts(ctx context.Context, search string) ([]entity.Product, error)
	// GetProduct busca um produto por id. Devolve domain.ErrNotFound se não existe.
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	CreateProduct(ctx context.Context, in CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int, in UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ListMovements(ctx context.Context) ([]entity.Movement, error)
	// CreateMovement registra uma movimentação. Em caso de sucesso a resposta
	// pode trazer um warning de negócio (ex.: estoque abaixo do mínimo).
	CreateMovement(ctx context.Context, in CreateMovementRequest) (*MovementCreated, error)
}

// ── DTOs de requisição/resposta ────────────────────────────────────────────────

// CreateProductRequest corpo de criação de produto. CurrentStock é o estoque
// inicial, definido uma única vez aqui; depois só muda via movimentações.
type CreateProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Material     string `json:"material"`
	MinStock     int    `json:"min_stock"`
	CurrentStock int    `json:"current_stock"`
}

// UpdateProductRequest corpo de atualização de produto. Não existe campo de
// estoque atual: uma edição nunca pode submeter current_stock.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Material    string `json:"material"`
	MinStock    int    `json:"min_stock"`
}

// CreateMovementRequest corpo de registro de movimentação. MovementDate vai no
// formato do input datetime-local (2006-01-02T15:04), que o backend aceita.
type CreateMovementRequest struct {
	Product      int    `json:"product"`
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	MovementDate string `json:"movement_date"`
}

// MovementCreated movimentação criada, com o warning opcional do servidor.
type MovementCreated struct {
	entity.Movement
	Warning string `json:"warning"`
}

// ── Erro da API ────────────────────────────────────────────────────────────────

// APIError rejeição da API com o mapa de erros por campo no formato do
// backend: {"name": ["..."]} para erros de campo, {"non_field_errors": ["..."]}
// para erros gerais de validação.
type APIError struct {
	StatusCode     int
	Fields         map[string][]string
	NonFieldErrors []string
}

func (e *APIError) Error() string {
	if msg := e.NonFieldError(); msg != "" {
		return msg
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// FieldError devolve a primeira mensagem do campo, ou vazio se não há.
func (e *APIError) FieldError(name string) string {
	if msgs, ok := e.Fields[name]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// NonFieldError devolve a primeira mensagem geral, ou vazio se não há.
func (e *APIError) NonFieldError() string {
	if len(e.NonFieldErrors) > 0 {
		return e.NonFieldErrors[0]
	}
	return ""
}

// ── Implementação HTTP ─────────────────────────────────────────────────────────

// HTTPClient implementa Client sobre a API REST remota. Compartilha base URL e
// headers padrão entre todas as operações das três páginas.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New constrói o cliente HTTP com timeout explícito por requisição.
func New(cfg config.APIConfig) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListProducts(ctx context.Context, search string) ([]entity.Product, error) {
	path := "/products/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, in CreateProductRequest) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodPost, "/products/", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int, in UpdateProductRequest) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d/", id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil)
}

func (c *HTTPClient) ListMovements(ctx context.Context) ([]entity.Movement, error) {
	var movements []entity.Movement
	if err := c.do(ctx, http.MethodGet, "/movements/", nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

func (c *HTTPClient) CreateMovement(ctx context.Context, in CreateMovementRequest) (*MovementCreated, error) {
	var created MovementCreated
	if err := c.do(ctx, http.MethodPost, "/movements/", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do executa uma requisição JSON contra a API e decodifica a resposta em out
// (quando out não é nil). Respostas não-2xx viram *APIError; 404 vira
// domain.ErrNotFound.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar corpo: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar resposta de %s %s: %w", method, path, err)
	}
	return nil
}

// parseAPIError monta o APIError a partir do corpo de erro do backend. Corpo
// ilegível produz um APIError vazio, que vira a mensagem genérica nas camadas
// de cima.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Fields:     map[string][]string{},
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiErr
	}

	for field, value := range payload {
		var msgs []string
		if err := json.Unmarshal(value, &msgs); err != nil {
			// "detail" e afins chegam como string simples
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				continue
			}
			msgs = []string{single}
		}
		if field == "non_field_errors" || field == "detail" {
			apiErr.NonFieldErrors = append(apiErr.NonFieldErrors, msgs...)
			continue
		}
		apiErr.Fields[field] = msgs
	}
	return apiErr
}
