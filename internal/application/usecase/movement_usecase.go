package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/tu-usuario/estoque-web/internal/application/dto"
	"github.com/tu-usuario/estoque-web/internal/domain"
	"github.com/tu-usuario/estoque-web/internal/domain/entity"
	"github.com/tu-usuario/estoque-web/internal/infrastructure/backend"
	"github.com/tu-usuario/estoque-web/pkg/logger"
)

// Mensagens exibidas ao usuário na página de movimentação.
const (
	MsgMovementSuccess    = "Movimentação registrada com sucesso!"
	MsgMovementFailed     = "Erro ao registrar movimentação."
	MsgMovementValidation = "Selecione o produto, informe uma quantidade positiva e a data da movimentação."
)

// MovementBoard dados da página de movimentação: produtos para o seletor e o
// histórico recente.
type MovementBoard struct {
	Products  []entity.Product
	Movements []entity.Movement
}

// MovementUseCase lógica de cliente da página de movimentação. A regra de
// suficiência de estoque é contrato do backend: rejeições chegam via
// non_field_errors e avisos de estoque baixo via warning, ambos repassados
// verbatim.
type MovementUseCase struct {
	api backend.Client
	log *logger.Logger
}

// NewMovementUseCase constrói o caso de uso.
func NewMovementUseCase(api backend.Client, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{api: api, log: log}
}

// LoadBoard busca produtos e movimentações concorrentemente: as duas
// requisições partem juntas e o resultado só volta quando ambas terminam.
// Falha em qualquer uma é registrada em log e deixa a lista correspondente
// vazia; nunca chega ao usuário.
func (uc *MovementUseCase) LoadBoard(ctx context.Context) *MovementBoard {
	board := &MovementBoard{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, err := uc.api.ListProducts(ctx, "")
		if err != nil {
			uc.log.Error().Err(err).Msg("carregar produtos")
			return
		}
		board.Products = products
	}()
	go func() {
		defer wg.Done()
		movements, err := uc.api.ListMovements(ctx)
		if err != nil {
			uc.log.Error().Err(err).Msg("carregar movimentações")
			return
		}
		board.Movements = movements
	}()
	wg.Wait()

	return board
}

// Register valida e registra uma movimentação. Devolve o warning do servidor
// quando a resposta de sucesso traz um (ex.: estoque abaixo do mínimo).
// O cliente não faz nenhuma aritmética de estoque: os números exibidos vêm
// sempre de um novo LoadBoard após o sucesso.
func (uc *MovementUseCase) Register(ctx context.Context, in dto.MovementFormInput) (string, error) {
	if err := validateMovement(in); err != nil {
		return "", err
	}

	created, err := uc.api.CreateMovement(ctx, backend.CreateMovementRequest{
		Product:      in.Product,
		MovementType: in.MovementType,
		Quantity:     in.Quantity,
		MovementDate: in.MovementDate,
	})
	if err != nil {
		uc.log.Error().Err(err).Int("product_id", in.Product).Msg("registrar movimentação")
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			if msg := apiErr.NonFieldError(); msg != "" {
				return "", &domain.SubmitError{Message: msg}
			}
		}
		return "", &domain.SubmitError{Message: MsgMovementFailed}
	}

	return created.Warning, nil
}

func validateMovement(in dto.MovementFormInput) error {
	if in.Product <= 0 || in.Quantity < 1 || in.MovementDate == "" {
		return &domain.ValidationError{Message: MsgMovementValidation}
	}
	if in.MovementType != entity.MovementTypeIN && in.MovementType != entity.MovementTypeOUT {
		return &domain.ValidationError{Message: MsgMovementValidation}
	}
	return nil
}
