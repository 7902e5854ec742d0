package entity

import (
	"fmt"
	"strings"
	"time"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // saída
)

// MovementTypeLabel devolve o rótulo de exibição do tipo (ENTRADA/SAÍDA).
func MovementTypeLabel(movementType string) string {
	if movementType == MovementTypeIN {
		return "ENTRADA"
	}
	return "SAÍDA"
}

// Movement representa uma movimentação de estoque devolvida pela API.
// ProductName e UserName são campos desnormalizados preenchidos pelo servidor
// para exibição; o cliente os usa tal como recebidos.
type Movement struct {
	ID           int     `json:"id"`
	Product      int     `json:"product"`
	MovementType string  `json:"movement_type"`
	Quantity     int     `json:"quantity"`
	MovementDate APITime `json:"movement_date"`
	ProductName  string  `json:"product_name"`
	UserName     string  `json:"user_name"`
}

// TypeLabel rótulo de exibição do tipo desta movimentação.
func (m Movement) TypeLabel() string {
	return MovementTypeLabel(m.MovementType)
}

// APITime timestamp no formato emitido pelo backend. O serializador do
// backend pode ou não incluir fração de segundo e timezone, então o parse
// tenta os layouts conhecidos em ordem.
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// UnmarshalJSON aceita os layouts de timestamp conhecidos do backend.
func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp inválido: %q", s)
}

// MarshalJSON serializa no formato RFC3339, o que o backend aceita.
func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// Display formata a data e hora locais para exibição no histórico.
func (t APITime) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}
