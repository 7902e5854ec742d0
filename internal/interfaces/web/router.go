package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/estoque-web/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
}

// Router registra as rotas visíveis do cliente.
func Router(app *fiber.App, deps RouterDeps) {
	productHandler := NewProductHandler(deps.ProductUC)
	movementHandler := NewMovementHandler(deps.MovementUC)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	})

	app.Get("/dashboard", productHandler.Dashboard)

	app.Get("/product/new", productHandler.NewForm)
	app.Post("/product/new", productHandler.CreateSubmit)
	app.Get("/product/edit/:id", productHandler.EditForm)
	app.Post("/product/edit/:id", productHandler.EditSubmit)
	app.Get("/product/delete/:id", productHandler.DeleteConfirm)
	app.Post("/product/delete/:id", productHandler.DeleteSubmit)

	app.Get("/movements", movementHandler.Board)
	app.Post("/movements", movementHandler.Register)
}
