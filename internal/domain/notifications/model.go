package notifications

import "time"

type Kind string

const (
	KindSistema            Kind = "SISTEMA"
	KindManutencaoAtrasada Kind = "MANUTENCAO_ATRASADA"
	KindEstoqueBaixo       Kind = "ESTOQUE_BAIXO"
)

type Notification struct {
	ID        int64
	CompanyID int64
	UserID    *int64
	Kind      Kind
	Title     string
	Message   string
	Read      bool
	Link      string
	CreatedAt time.Time
}
