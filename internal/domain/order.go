package domain

import "time"

// Order is a service request ("pedido") owned by the external API.
type Order struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Servico       string     `json:"servico"`
	Situacao      Situacao   `json:"situacao"`
	Data          time.Time  `json:"data"`
	DataEntregue  *time.Time `json:"dataEntregue"`
	EmployeeID    string     `json:"employeeId,omitempty"`
	EntreguePorID string     `json:"entreguePorId,omitempty"`
	Descricao     string     `json:"descricao,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
}

// OrderUpdate is the outcome of a status transition, merged by callers into
// their in-memory order list.
type OrderUpdate struct {
	ID           string     `json:"id"`
	Situacao     Situacao   `json:"situacao"`
	DataEntregue *time.Time `json:"dataEntregue"`
	ImageURL     string     `json:"imageUrl,omitempty"`
}

// Apply merges the update into o.
func (u OrderUpdate) Apply(o *Order) {
	if o == nil || o.ID != u.ID {
		return
	}
	o.Situacao = u.Situacao
	o.DataEntregue = u.DataEntregue
	if u.ImageURL != "" {
		o.ImageURL = u.ImageURL
	}
}

// OrderFilter selects the orders fetched from the API.
type OrderFilter struct {
	Servico string
	Mes     int
	Ano     int
}

// Employee is the operator acting on the panel.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Deliverer is a named delivery round orders can be listed to.
type Deliverer struct {
	IDDelivery string `json:"idDelivery"`
	Name       string `json:"name"`
}
