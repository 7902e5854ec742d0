package usecase

import (
	"context"
	"errors"

	"github.com/tu-usuario/estoque-web/internal/application/dto"
	"github.com/tu-usuario/estoque-web/internal/domain"
	"github.com/tu-usuario/estoque-web/internal/domain/entity"
	"github.com/tu-usuario/estoque-web/internal/infrastructure/backend"
	"github.com/tu-usuario/estoque-web/pkg/logger"
)

// Mensagens exibidas ao usuário nas páginas de produto.
const (
	MsgProductValidation = "Por favor, preencha o nome e certifique-se que o estoque não é negativo."
	MsgProductSaveFailed = "Erro ao salvar. Verifique se o nome já existe."
	MsgProductLoadFailed = "Erro ao carregar dados do produto."
	MsgProductDelFailed  = "Erro ao excluir produto."
)

// ProductUseCase lógica de cliente das páginas de listagem e formulário de
// produto. Toda regra de negócio (unicidade de nome, flag de estoque baixo,
// aritmética de estoque) pertence ao backend; aqui só há validação local,
// montagem de requisições e tradução de erros em mensagens.
type ProductUseCase struct {
	api backend.Client
	log *logger.Logger
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(api backend.Client, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{api: api, log: log}
}

// List busca produtos filtrados pelo termo (vazio = conjunto completo).
// Falha de busca é registrada em log e devolvida; a página trata como
// silenciosa para o usuário.
func (uc *ProductUseCase) List(ctx context.Context, search string) ([]entity.Product, error) {
	products, err := uc.api.ListProducts(ctx, search)
	if err != nil {
		uc.log.Error().Err(err).Str("search", search).Msg("buscar produtos")
		return nil, err
	}
	return products, nil
}

// Load busca um produto para pré-preencher o formulário de edição.
func (uc *ProductUseCase) Load(ctx context.Context, id int) (*entity.Product, error) {
	product, err := uc.api.GetProduct(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Int("product_id", id).Msg("carregar produto")
		return nil, err
	}
	return product, nil
}

// Validate validação local do formulário, avaliada antes de qualquer chamada
// de rede: nome obrigatório e estoque mínimo não negativo. As duas condições
// falham com uma única mensagem combinada.
func (uc *ProductUseCase) Validate(in dto.ProductFormInput) error {
	if in.Name == "" || in.MinStock < 0 {
		return &domain.ValidationError{Message: MsgProductValidation}
	}
	return nil
}

// Create valida e cria um produto, incluindo o estoque inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductFormInput) error {
	if err := uc.Validate(in); err != nil {
		return err
	}
	_, err := uc.api.CreateProduct(ctx, backend.CreateProductRequest{
		Name:         in.Name,
		Description:  in.Description,
		Material:     in.Material,
		MinStock:     in.MinStock,
		CurrentStock: in.CurrentStock,
	})
	if err != nil {
		return uc.saveError(err)
	}
	return nil
}

// Update valida e atualiza um produto. O corpo de atualização não tem campo
// de estoque atual, então uma edição nunca submete current_stock.
func (uc *ProductUseCase) Update(ctx context.Context, id int, in dto.ProductFormInput) error {
	if err := uc.Validate(in); err != nil {
		return err
	}
	_, err := uc.api.UpdateProduct(ctx, id, backend.UpdateProductRequest{
		Name:        in.Name,
		Description: in.Description,
		Material:    in.Material,
		MinStock:    in.MinStock,
	})
	if err != nil {
		return uc.saveError(err)
	}
	return nil
}

// Delete exclui um produto. A confirmação explícita do usuário acontece na
// camada web, antes desta chamada.
func (uc *ProductUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.api.DeleteProduct(ctx, id); err != nil {
		uc.log.Error().Err(err).Int("product_id", id).Msg("excluir produto")
		return &domain.SubmitError{Message: MsgProductDelFailed}
	}
	return nil
}

// saveError traduz a rejeição do backend na mensagem a exibir: erro de campo
// em name (conflito de unicidade) sai verbatim; o resto vira o fallback.
func (uc *ProductUseCase) saveError(err error) error {
	uc.log.Error().Err(err).Msg("salvar produto")
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.FieldError("name"); msg != "" {
			return &domain.SubmitError{Message: msg}
		}
	}
	return &domain.SubmitError{Message: MsgProductSaveFailed}
}
