package entity

// Product representa um produto do inventário. É uma cópia transitória do
// recurso remoto: o dono dos dados é o backend.
//
// IsLowStock é derivado pelo servidor (current_stock < min_stock) e usado
// apenas para exibição; o cliente nunca o recalcula. CurrentStock é mantido
// pelo servidor após a criação — toda alteração passa por movimentações.
type Product struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Material     string `json:"material"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	IsLowStock   bool   `json:"is_low_stock"`
}
