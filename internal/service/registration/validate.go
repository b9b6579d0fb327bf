package registration

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

// Operator-facing validation messages.
const (
	MsgNoClass    = "selecione pelo menos uma classe"
	MsgNoProduct  = "selecione pelo menos um produto"
	MsgTaxa       = "informe o valor da taxa"
	MsgArea       = "informe a área de venda"
	MsgAnos       = "anos de atividade inválido"
	MsgCPF        = "cpf inválido"
	MsgNoPrograma = "benefício sem programa"
)

// Validator checks the two steps of the form.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return validCPF(fl.Field().String())
	})
	return &Validator{v: v}
}

// ValidateStep1 checks the common fields and the class selection.
func (val *Validator) ValidateStep1(c Common) error {
	if err := val.v.Struct(c); err != nil {
		return translate(err)
	}
	if len(c.Classes) == 0 {
		return apperr.Validation(MsgNoClass)
	}
	for _, cl := range c.Classes {
		if !cl.Valid() {
			return apperr.Validation(fmt.Sprintf("classe inválida: %s", cl))
		}
	}
	return nil
}

// ValidateStep2 checks the sections the class selection made visible.
func (val *Validator) ValidateStep2(f Form) error {
	p := PlanFor(f.Classes)
	if p.NeedsVendor {
		var v domain.FeiranteInfo
		if f.Feirante != nil {
			v = *f.Feirante
		}
		switch {
		case v.Taxa <= 0:
			return apperr.Validation(MsgTaxa)
		case strings.TrimSpace(v.Area) == "":
			return apperr.Validation(MsgArea)
		case v.AnosAtividade < 0:
			return apperr.Validation(MsgAnos)
		case len(cleanList(v.Produtos)) == 0:
			return apperr.Validation(MsgNoProduct)
		}
	}
	if p.NeedsRural {
		for _, b := range f.Beneficios {
			if strings.TrimSpace(b.Programa) == "" {
				return apperr.Validation(MsgNoPrograma)
			}
		}
	}
	return nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("formulário inválido")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "cpf":
		return apperr.Validation(MsgCPF)
	case "required":
		return apperr.Validation(fmt.Sprintf("campo %s é obrigatório", fe.Field()))
	case "min":
		return apperr.Validation(fmt.Sprintf("campo %s deve ter pelo menos %s caracteres", fe.Field(), fe.Param()))
	case "max":
		return apperr.Validation(fmt.Sprintf("campo %s deve ter no máximo %s caracteres", fe.Field(), fe.Param()))
	default:
		return apperr.Validation(fmt.Sprintf("campo %s inválido", fe.Field()))
	}
}

// validCPF checks length and both check digits of a Brazilian CPF.
func validCPF(s string) bool {
	d := digitsOnly(s)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != int(d[n]-'0') {
			return false
		}
	}
	return true
}
