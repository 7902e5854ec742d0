package dto

// MovementFormInput campos do formulário de movimentação. MovementDate fica no
// formato do input datetime-local (2006-01-02T15:04).
type MovementFormInput struct {
	Product      int    `form:"product"`
	MovementType string `form:"movement_type"`
	Quantity     int    `form:"quantity"`
	MovementDate string `form:"movement_date"`
}
