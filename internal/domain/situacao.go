package domain

import (
	"encoding/json"
	"strings"
)

// SituacaoKind is the semantic state of an order.
type SituacaoKind string

// Known order states.
const (
	KindUnknown   SituacaoKind = "unknown"
	KindWaiting   SituacaoKind = "waiting"
	KindFinalized SituacaoKind = "finalized"
	KindCancelled SituacaoKind = "cancelled"
	KindListed    SituacaoKind = "listed"
)

// Wire values used by the external API.
const (
	wireWaiting   = "Aguardando"
	wireFinalized = "Finalizado"
	wireCancelled = "Cancelado"
	wireListed    = "Lista"
)

// Situacao is the status of an order. Listed orders carry the deliverer name
// of the round they were assigned to.
type Situacao struct {
	Kind          SituacaoKind
	DelivererName string
	raw           string
}

// Waiting returns the "Aguardando" status.
func Waiting() Situacao { return Situacao{Kind: KindWaiting} }

// Finalized returns the "Finalizado" status.
func Finalized() Situacao { return Situacao{Kind: KindFinalized} }

// Cancelled returns the "Cancelado" status.
func Cancelled() Situacao { return Situacao{Kind: KindCancelled} }

// Listed returns the "Lista <name>" status for the given deliverer.
func Listed(delivererName string) Situacao {
	return Situacao{Kind: KindListed, DelivererName: strings.TrimSpace(delivererName)}
}

// ParseSituacao converts the API string into a Situacao. This is the only place
// where the "Lista" prefix is inspected.
func ParseSituacao(s string) Situacao {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case wireWaiting:
		return Waiting()
	case wireFinalized:
		return Finalized()
	case wireCancelled:
		return Cancelled()
	}
	if strings.HasPrefix(trimmed, wireListed) {
		return Listed(strings.TrimPrefix(trimmed, wireListed))
	}
	return Situacao{Kind: KindUnknown, raw: s}
}

// String returns the wire form understood by the external API.
func (s Situacao) String() string {
	switch s.Kind {
	case KindWaiting:
		return wireWaiting
	case KindFinalized:
		return wireFinalized
	case KindCancelled:
		return wireCancelled
	case KindListed:
		if s.DelivererName == "" {
			return wireListed
		}
		return wireListed + " " + s.DelivererName
	default:
		return s.raw
	}
}

// IsWaiting reports whether the order still awaits handling.
func (s Situacao) IsWaiting() bool { return s.Kind == KindWaiting }

// RequiresDeliveryDate reports whether orders in this state must carry dataEntregue.
func (s Situacao) RequiresDeliveryDate() bool {
	return s.Kind == KindFinalized || s.Kind == KindListed
}

// MarshalJSON encodes the wire form.
func (s Situacao) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the wire form.
func (s *Situacao) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseSituacao(raw)
	return nil
}

// ParseSituacaoKind parses a filter value. It accepts both kind names and wire values.
func ParseSituacaoKind(s string) (SituacaoKind, bool) {
	switch k := SituacaoKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWaiting, KindFinalized, KindCancelled, KindListed:
		return k, true
	}
	if parsed := ParseSituacao(s); parsed.Kind != KindUnknown {
		return parsed.Kind, true
	}
	return KindUnknown, false
}
