package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/estoque-web/internal/application/dto"
	"github.com/tu-usuario/estoque-web/internal/application/usecase"
	"github.com/tu-usuario/estoque-web/internal/domain"
	"github.com/tu-usuario/estoque-web/internal/domain/entity"
)

// formato do input datetime-local
const movementDateLayout = "2006-01-02T15:04"

// MovementHandler página de movimentação de estoque: formulário + histórico.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Board renderiza a página. Produtos e histórico são buscados
// concorrentemente e a data do formulário vem preenchida com o momento da
// abertura.
func (h *MovementHandler) Board(c *fiber.Ctx) error {
	board := h.uc.LoadBoard(c.Context())
	return h.render(c, board, defaultForm(), "", "")
}

// Register submete a movimentação. Em sucesso re-busca os dois conjuntos
// (os números de estoque exibidos são sempre re-derivados do servidor) e só a
// quantidade volta ao padrão; produto, tipo e data ficam para repetição
// rápida. Warning do servidor vira aviso bloqueante além da mensagem inline.
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	in := defaultForm()
	if err := c.BodyParser(&in); err != nil {
		board := h.uc.LoadBoard(c.Context())
		return h.render(c, board, in, usecase.MsgMovementValidation, "error")
	}

	warning, err := h.uc.Register(c.Context(), in)
	if err != nil {
		board := h.uc.LoadBoard(c.Context())
		return h.render(c, board, in, movementMessage(err), "error")
	}

	board := h.uc.LoadBoard(c.Context())
	in.Quantity = 1
	if warning != "" {
		return h.render(c, board, in, warning, "warning")
	}
	return h.render(c, board, in, usecase.MsgMovementSuccess, "success")
}

func (h *MovementHandler) render(c *fiber.Ctx, board *usecase.MovementBoard, in dto.MovementFormInput, message, kind string) error {
	data := fiber.Map{
		"Products":    board.Products,
		"Movements":   board.Movements,
		"Form":        in,
		"Message":     message,
		"MessageKind": kind,
	}
	// warning de negócio: além da mensagem inline, um aviso bloqueante
	if kind == "warning" {
		data["Blocking"] = message
	}
	return c.Render("movements", data)
}

func defaultForm() dto.MovementFormInput {
	return dto.MovementFormInput{
		MovementType: entity.MovementTypeIN,
		Quantity:     1,
		MovementDate: time.Now().Format(movementDateLayout),
	}
}

func movementMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var sErr *domain.SubmitError
	if errors.As(err, &sErr) {
		return sErr.Message
	}
	return usecase.MsgMovementFailed
}
