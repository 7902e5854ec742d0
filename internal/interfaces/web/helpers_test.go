package web_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/estoque-web/internal/application/usecase"
	"github.com/tu-usuario/estoque-web/internal/domain"
	"github.com/tu-usuario/estoque-web/internal/domain/entity"
	"github.com/tu-usuario/estoque-web/internal/infrastructure/backend"
	"github.com/tu-usuario/estoque-web/internal/interfaces/web"
	"github.com/tu-usuario/estoque-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso em memória
//
// Faz o papel do serviço remoto: guarda produtos e movimentações, aplica a
// aritmética de estoque e deriva is_low_stock e o warning — exatamente as
// regras que o cliente nunca pode recalcular por conta própria.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	mu        sync.Mutex
	products  map[int]*entity.Product
	movements []entity.Movement
	nextID    int

	// ganchos de falha
	listErr       error
	deleteErr     error
	createErr     error
	movementErr   error

	// contadores
	listProductsCalls   int
	listMovementsCalls  int
	createMovementCalls int
	deleteCalls         int
	lastSearch          string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{products: map[int]*entity.Product{}, nextID: 1}
}

func (f *fakeAPI) seed(p entity.Product) *entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	stored := p
	f.products[stored.ID] = &stored
	return &stored
}

func snapshot(p *entity.Product) entity.Product {
	out := *p
	out.IsLowStock = out.CurrentStock < out.MinStock
	return out
}

func (f *fakeAPI) ListProducts(ctx context.Context, search string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listProductsCalls++
	f.lastSearch = search
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Product
	for _, p := range f.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, snapshot(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := snapshot(p)
	return &out, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, in backend.CreateProductRequest) (*entity.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := f.seed(entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Material:     in.Material,
		MinStock:     in.MinStock,
		CurrentStock: in.CurrentStock,
	})
	out := snapshot(created)
	return &out, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id int, in backend.UpdateProductRequest) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Material = in.Material
	p.MinStock = in.MinStock
	out := snapshot(p)
	return &out, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.products, id)
	return nil
}

func (f *fakeAPI) ListMovements(ctx context.Context) ([]entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listMovementsCalls++
	out := make([]entity.Movement, len(f.movements))
	copy(out, f.movements)
	// histórico mais recente primeiro
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeAPI) CreateMovement(ctx context.Context, in backend.CreateMovementRequest) (*backend.MovementCreated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createMovementCalls++
	if f.movementErr != nil {
		return nil, f.movementErr
	}
	p, ok := f.products[in.Product]
	if !ok {
		return nil, &backend.APIError{StatusCode: http.StatusBadRequest, Fields: map[string][]string{}}
	}
	if in.MovementType == entity.MovementTypeIN {
		p.CurrentStock += in.Quantity
	} else {
		p.CurrentStock -= in.Quantity
	}
	movement := entity.Movement{
		ID:           len(f.movements) + 1,
		Product:      p.ID,
		MovementType: in.MovementType,
		Quantity:     in.Quantity,
		ProductName:  p.Name,
		UserName:     "admin",
	}
	f.movements = append(f.movements, movement)

	created := &backend.MovementCreated{Movement: movement}
	if p.CurrentStock < p.MinStock {
		created.Warning = fmt.Sprintf("Atenção: o estoque de %s ficou abaixo do mínimo!", p.Name)
	}
	return created, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de aplicação e requisição
// ──────────────────────────────────────────────────────────────────────────────

func buildApp(api backend.Client) *fiber.App {
	// Immutable: o fake retém strings vindas dos handlers após o fim da
	// requisição; sem cópia, o fiber reutiliza o buffer e corrompe os valores.
	app := fiber.New(fiber.Config{Views: web.NewEngine(), Immutable: true})
	web.Router(app, web.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(api, logger.Nop()),
		MovementUC: usecase.NewMovementUseCase(api, logger.Nop()),
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
