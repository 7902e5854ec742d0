package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/estoque-web/internal/application/dto"
	"github.com/tu-usuario/estoque-web/internal/application/usecase"
	"github.com/tu-usuario/estoque-web/internal/domain"
)

// ProductHandler páginas de listagem, formulário e exclusão de produto.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Dashboard renderiza a lista de produtos, filtrada pelo termo de busca.
// Falha de busca é silenciosa para o usuário: a página sai sem aviso e o erro
// já foi registrado em log pelo caso de uso.
func (h *ProductHandler) Dashboard(c *fiber.Ctx) error {
	search := c.Query("search")
	products, _ := h.uc.List(c.Context(), search)
	return c.Render("dashboard", fiber.Map{
		"Search":   search,
		"Products": products,
	})
}

// NewForm renderiza o formulário de criação em branco.
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	return h.renderForm(c, false, 0, dto.ProductFormInput{}, "")
}

// CreateSubmit valida e cria o produto; sucesso navega de volta à lista.
// Em falha o formulário volta com os valores preservados e a mensagem.
func (h *ProductHandler) CreateSubmit(c *fiber.Ctx) error {
	var in dto.ProductFormInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderForm(c, false, 0, in, usecase.MsgProductValidation)
	}
	if err := h.uc.Create(c.Context(), in); err != nil {
		return h.renderForm(c, false, 0, in, formMessage(err, usecase.MsgProductSaveFailed))
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// EditForm pré-preenche o formulário com o produto buscado por id. Falha na
// busca mostra o erro e deixa os campos nos padrões.
func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	product, err := h.uc.Load(c.Context(), id)
	if err != nil {
		return h.renderForm(c, true, id, dto.ProductFormInput{}, usecase.MsgProductLoadFailed)
	}
	in := dto.ProductFormInput{
		Name:        product.Name,
		Description: product.Description,
		Material:    product.Material,
		MinStock:    product.MinStock,
	}
	return h.renderForm(c, true, id, in, "")
}

// EditSubmit valida e atualiza o produto. O formulário de edição não expõe o
// estoque atual; ajustes de estoque só acontecem via movimentação.
func (h *ProductHandler) EditSubmit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	var in dto.ProductFormInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderForm(c, true, id, in, usecase.MsgProductValidation)
	}
	if err := h.uc.Update(c.Context(), id, in); err != nil {
		return h.renderForm(c, true, id, in, formMessage(err, usecase.MsgProductSaveFailed))
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// DeleteConfirm renderiza a página de confirmação de exclusão. Nenhuma
// requisição de exclusão parte daqui; só o POST de confirmação exclui.
func (h *ProductHandler) DeleteConfirm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	name := ""
	if product, err := h.uc.Load(c.Context(), id); err == nil {
		name = product.Name
	}
	return c.Render("confirm_delete", fiber.Map{
		"ID":   id,
		"Name": name,
	})
}

// DeleteSubmit exclui o produto após a confirmação. Sucesso volta à lista
// (re-buscada); falha renderiza a lista inalterada com o aviso bloqueante.
func (h *ProductHandler) DeleteSubmit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		products, _ := h.uc.List(c.Context(), "")
		return c.Render("dashboard", fiber.Map{
			"Search":   "",
			"Products": products,
			"Error":    formMessage(err, usecase.MsgProductDelFailed),
		})
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *ProductHandler) renderForm(c *fiber.Ctx, isEdit bool, id int, in dto.ProductFormInput, errMsg string) error {
	return c.Render("product_form", fiber.Map{
		"IsEdit": isEdit,
		"ID":     id,
		"Form":   in,
		"Error":  errMsg,
	})
}

// formMessage extrai a mensagem de usuário do erro, com fallback genérico.
func formMessage(err error, fallback string) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var sErr *domain.SubmitError
	if errors.As(err, &sErr) {
		return sErr.Message
	}
	return fallback
}
