package dto

// ProductFormInput campos editáveis do formulário de produto. CurrentStock é o
// estoque inicial e só é oferecido na criação; em modo de edição o formulário
// não expõe o campo e o valor submetido é ignorado.
type ProductFormInput struct {
	Name         string `form:"name"`
	Description  string `form:"description"`
	Material     string `form:"material"`
	MinStock     int    `form:"min_stock"`
	CurrentStock int    `form:"current_stock"`
}
