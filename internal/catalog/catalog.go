package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"painel-social/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog lists the choices offered by the panel forms.
type Catalog struct {
	Servicos   []string        `yaml:"servicos" json:"servicos"`
	Classes    []domain.Classe `yaml:"classes" json:"classes"`
	Bairros    []string        `yaml:"bairros" json:"bairros"`
	Beneficios []string        `yaml:"beneficios" json:"beneficios"`
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultYAML
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.Servicos = clean(c.Servicos)
	c.Bairros = clean(c.Bairros)
	c.Beneficios = clean(c.Beneficios)
	if len(c.Classes) == 0 {
		c.Classes = domain.AllClasses()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Servicos) == 0 {
		return errors.New("catalog: no servicos")
	}
	for _, cl := range c.Classes {
		if !cl.Valid() {
			return fmt.Errorf("catalog: unknown classe %q", cl)
		}
	}
	return nil
}

// HasServico reports whether s is a configured service, ignoring case.
func (c *Catalog) HasServico(s string) bool {
	for _, v := range c.Servicos {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
