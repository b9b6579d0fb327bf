package registration

import (
	"strings"

	"painel-social/internal/domain"
)

// Common holds the step-1 fields every class fills in.
type Common struct {
	Nome     string          `json:"nome" validate:"required,min=3,max=120"`
	CPF      string          `json:"cpf" validate:"required,cpf"`
	Telefone string          `json:"telefone" validate:"omitempty,min=8,max=20"`
	Bairro   string          `json:"bairro" validate:"required,max=80"`
	Endereco string          `json:"endereco" validate:"omitempty,max=200"`
	Classes  []domain.Classe `json:"classe"`
}

// Form is the whole registration record as typed by the operator.
type Form struct {
	Common
	Feirante   *domain.FeiranteInfo     `json:"feirante,omitempty"`
	Documentos *domain.DocumentosRurais `json:"documentos,omitempty"`
	Beneficios []domain.Beneficio       `json:"beneficios,omitempty"`
}

// Plan tells which step-2 sections apply to a class selection.
type Plan struct {
	SkipStep2   bool `json:"skipStep2"`
	NeedsVendor bool `json:"needsVendor"`
	NeedsRural  bool `json:"needsRural"`
}

// PlanFor derives the step-2 layout from the selected classes.
// An empty selection skips nothing; step 1 rejects it anyway.
func PlanFor(classes []domain.Classe) Plan {
	var p Plan
	onlyOffice := len(classes) > 0
	for _, c := range classes {
		switch {
		case c == domain.ClasseFeirante:
			p.NeedsVendor = true
			onlyOffice = false
		case c.IsRural():
			p.NeedsRural = true
			onlyOffice = false
		case c == domain.ClasseOutros || c == domain.ClasseReparticaoPublica:
		default:
			onlyOffice = false
		}
	}
	p.SkipStep2 = onlyOffice
	return p
}

// DefaultBenefitPrograms are the social programs asked in the benefits section.
var DefaultBenefitPrograms = []string{
	"Bolsa Família",
	"Garantia Safra",
	"Seguro Defeso",
	"PAA",
	"PNAE",
	"Pronaf",
}

// ToUser builds the API record, keeping only the sections the plan requires.
func (f Form) ToUser() domain.User {
	p := PlanFor(f.Classes)
	u := domain.User{
		Nome:     strings.TrimSpace(f.Nome),
		CPF:      digitsOnly(f.CPF),
		Telefone: strings.TrimSpace(f.Telefone),
		Bairro:   strings.TrimSpace(f.Bairro),
		Endereco: strings.TrimSpace(f.Endereco),
		Classes:  f.Classes,
	}
	if p.NeedsVendor && f.Feirante != nil {
		v := *f.Feirante
		v.Area = strings.TrimSpace(v.Area)
		v.Produtos = cleanList(v.Produtos)
		u.Feirante = &v
	}
	if p.NeedsRural {
		if f.Documentos != nil {
			d := *f.Documentos
			u.Documentos = &d
		}
		for _, b := range f.Beneficios {
			if !b.Possui {
				b.Anos = ""
			}
			b.Anos = strings.TrimSpace(b.Anos)
			u.Beneficios = append(u.Beneficios, b)
		}
	}
	return u
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
