package models

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/positions"
)

type Player struct {
	ID       int64
	LeagueID int64
	FullName string
	Nickname string
	Phone    string
	PhotoURL string
	Active   bool
	TeamName string
	Position positions.Position
}

func DecodePlayer(r gjson.Result) Player {
	p := Unwrap(r, "jogador")
	return Player{
		ID:       firstInt(p, "id", "jogador_id"),
		LeagueID: firstInt(p, "pelada_id", "pelada.id"),
		FullName: firstString(p, "nome_completo", "nome"),
		Nickname: firstString(p, "apelido"),
		Phone:    firstString(p, "telefone"),
		PhotoURL: firstString(p, "foto_url", "foto"),
		Active:   firstBool(p, true, "ativo"),
		TeamName: firstString(p, "time_nome", "time.nome"),
		Position: positions.FromPlayer(p),
	}
}

// PhoneRegion is assumed for numbers stored without a country code.
const PhoneRegion = "BR"

// PhoneLabel formats the stored phone for display. Numbers that do not parse
// are shown as stored.
func (p Player) PhoneLabel() string {
	raw := strings.TrimSpace(p.Phone)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, PhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return raw
	}
	if phonenumbers.GetRegionCodeForNumber(number) == PhoneRegion {
		return phonenumbers.Format(number, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}

// DisplayName prefers the nickname, then the full name.
func (p Player) DisplayName() string {
	return displayName(p.Nickname, p.FullName, p.ID)
}

func displayName(nickname, fullName string, id int64) string {
	switch {
	case nickname != "":
		return nickname
	case fullName != "":
		return fullName
	case id != 0:
		return fmt.Sprintf("Jogador #%d", id)
	default:
		return "Jogador"
	}
}
