package models

import (
	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/positions"
)

type Team struct {
	ID       int64
	SeasonID int64
	Name     string
	Color    string
	CrestURL string
	Members  []TeamMember
}

// TeamMember is a roster entry. Rosters arrive as full objects, as
// time_jogador join rows or as bare player IDs.
type TeamMember struct {
	PlayerID int64
	FullName string
	Nickname string
	PhotoURL string
	Captain  bool
	Position positions.Position
}

func DecodeTeam(r gjson.Result) Team {
	t := Unwrap(r, "time")
	return Team{
		ID:       firstInt(t, "id"),
		SeasonID: firstInt(t, "temporada_id", "temporada.id"),
		Name:     firstString(t, "nome"),
		Color:    firstString(t, "cor"),
		CrestURL: firstString(t, "escudo_url", "escudo"),
		Members:  decodeMembers(t),
	}
}

func decodeMembers(team gjson.Result) []TeamMember {
	var members []TeamMember
	for _, entry := range Items(team, "jogadores", "time_jogadores") {
		if member, ok := DecodeTeamMember(entry); ok {
			members = append(members, member)
		}
	}
	return members
}

// DecodeTeamMember returns false when no player ID can be found.
func DecodeTeamMember(r gjson.Result) (TeamMember, bool) {
	if id, ok := asInt(r); ok {
		return TeamMember{PlayerID: id, Position: positions.Unknown}, id != 0
	}
	if !r.IsObject() {
		return TeamMember{}, false
	}

	id, ok := optionalInt(r, "id", "jogador_id", "jogador.id")
	if !ok || id == 0 {
		return TeamMember{}, false
	}
	player := Unwrap(r, "jogador")
	position := positions.FromPlayer(r)
	if position.IsUnknown() {
		position = positions.FromPlayer(player)
	}
	return TeamMember{
		PlayerID: id,
		FullName: firstString(player, "nome_completo", "nome"),
		Nickname: firstString(player, "apelido"),
		PhotoURL: firstString(player, "foto_url", "foto"),
		Captain:  firstBool(r, false, "capitao", "time_jogador.capitao"),
		Position: position,
	}, true
}

func (m TeamMember) DisplayName() string {
	return displayName(m.Nickname, m.FullName, m.PlayerID)
}

// MemberIDs returns the set of player IDs on the given teams.
func MemberIDs(teams []Team) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, team := range teams {
		for _, member := range team.Members {
			ids[member.PlayerID] = struct{}{}
		}
	}
	return ids
}

// Member finds a player on the roster.
func (t Team) Member(playerID int64) (TeamMember, bool) {
	for _, member := range t.Members {
		if member.PlayerID == playerID {
			return member, true
		}
	}
	return TeamMember{}, false
}
