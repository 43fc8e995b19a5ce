package clients

import "time"

type DocumentType string

const (
	DocCPF  DocumentType = "CPF"
	DocCNPJ DocumentType = "CNPJ"
)

type Status string

const (
	StatusAtivo   Status = "ATIVO"
	StatusInativo Status = "INATIVO"
)

// Client is an external customer of a SERVICO or HIBRIDO company.
type Client struct {
	ID           int64
	CompanyID    int64
	Name         string
	Document     string
	DocumentType DocumentType
	Phone        string
	Email        string
	Address      string
	City         string
	State        string
	ZIP          string
	Notes        string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
