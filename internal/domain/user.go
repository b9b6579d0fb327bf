package domain

import "strings"

// Classe is the professional/social category of a registered person.
type Classe string

// Known classes.
const (
	ClasseAgricultor        Classe = "Agricultor"
	ClassePescador          Classe = "Pescador"
	ClasseFeirante          Classe = "Feirante"
	ClassePecuarista        Classe = "Pecuarista"
	ClasseOutros            Classe = "Outros"
	ClasseReparticaoPublica Classe = "Repartição Pública"
)

var allowedClasses = [...]Classe{
	ClasseAgricultor, ClassePescador, ClasseFeirante,
	ClassePecuarista, ClasseOutros, ClasseReparticaoPublica,
}

// Valid reports whether c is a known class.
func (c Classe) Valid() bool {
	for _, v := range allowedClasses {
		if c == v {
			return true
		}
	}
	return false
}

// IsRural reports whether the class requires rural documents and benefits.
func (c Classe) IsRural() bool {
	return c == ClasseAgricultor || c == ClassePescador || c == ClassePecuarista
}

// AllClasses returns every known class in display order.
func AllClasses() []Classe {
	out := make([]Classe, len(allowedClasses))
	copy(out, allowedClasses[:])
	return out
}

// OutrosBairro is the neighborhood bucket for orders whose user cannot be resolved.
const OutrosBairro = "Outros"

// User is a citizen or producer registered with the office.
type User struct {
	ID       string   `json:"id"`
	Nome     string   `json:"nome"`
	CPF      string   `json:"cpf"`
	Telefone string   `json:"telefone,omitempty"`
	Bairro   string   `json:"bairro"`
	Endereco string   `json:"endereco,omitempty"`
	Classes  []Classe `json:"classe"`

	Feirante   *FeiranteInfo     `json:"feirante,omitempty"`
	Documentos *DocumentosRurais `json:"documentos,omitempty"`
	Beneficios []Beneficio       `json:"beneficios,omitempty"`
}

// Neighborhood returns the grouping key of the user.
func (u *User) Neighborhood() string {
	if u == nil {
		return OutrosBairro
	}
	if b := strings.TrimSpace(u.Bairro); b != "" {
		return b
	}
	return OutrosBairro
}

// FeiranteInfo is the market-vendor section of a registration.
type FeiranteInfo struct {
	Taxa          float64  `json:"taxa"`
	Area          string   `json:"area"`
	AnosAtividade int      `json:"anosAtividade"`
	CarroDeMao    bool     `json:"carroDeMao"`
	Produtos      []string `json:"produtos"`
}

// Documento is a rural document number with an optional uploaded file.
type Documento struct {
	Numero  string `json:"numero,omitempty"`
	FileURL string `json:"fileUrl,omitempty"`
}

// DocumentosRurais groups CAF, CAR, RGP and GTA.
type DocumentosRurais struct {
	CAF Documento `json:"caf"`
	CAR Documento `json:"car"`
	RGP Documento `json:"rgp"`
	GTA Documento `json:"gta"`
}

// Beneficio is a social-program yes/no flag with optional year(s).
type Beneficio struct {
	Programa string `json:"programa"`
	Possui   bool   `json:"possui"`
	Anos     string `json:"anos,omitempty"`
}
