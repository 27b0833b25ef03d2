package sidegamedomain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWolfChoice is returned when a wolf choice cannot be parsed.
var ErrInvalidWolfChoice = errors.New("invalid wolf choice")

// WolfChoiceKind is the captain's decision for a hole.
type WolfChoiceKind string

const (
	WolfChoiceLone    WolfChoiceKind = "lone"
	WolfChoicePartner WolfChoiceKind = "partner"
)

// WolfChoice is either a lone wolf or a partnership with one other player.
type WolfChoice struct {
	Kind    WolfChoiceKind `json:"kind"`
	Partner PlayerID       `json:"partnerId,omitempty"`
}

// LoneWolf is the captain playing alone against the other three.
func LoneWolf() WolfChoice {
	return WolfChoice{Kind: WolfChoiceLone}
}

// PartnerWith is the captain teaming with partner.
func PartnerWith(partner PlayerID) WolfChoice {
	return WolfChoice{Kind: WolfChoicePartner, Partner: partner}
}

// String renders the bag form: "lone" or "partner:<id>".
func (c WolfChoice) String() string {
	if c.Kind == WolfChoicePartner {
		return "partner:" + string(c.Partner)
	}
	return string(c.Kind)
}

// ParseWolfChoice parses "lone" or "partner:<id>".
func ParseWolfChoice(s string) (WolfChoice, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(WolfChoiceLone)) {
		return LoneWolf(), nil
	}
	kind, partner, ok := strings.Cut(s, ":")
	if ok && strings.EqualFold(kind, string(WolfChoicePartner)) {
		partner = strings.TrimSpace(partner)
		if partner != "" {
			return PartnerWith(PlayerID(partner)), nil
		}
	}
	return WolfChoice{}, fmt.Errorf("%w: %q", ErrInvalidWolfChoice, s)
}
