// Package positions normalizes the player positions returned by the league
// API and groups players by position for voting screens.
package positions

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codr1/Peladeiro/internal/slug"
)

type Code int

const (
	Goalkeeper          Code = 1
	Defender            Code = 2
	Midfielder          Code = 3
	Forward             Code = 4
	FullBack            Code = 5
	DefensiveMidfielder Code = 6
	AttackingMidfielder Code = 7
	Striker             Code = 8
	Winger              Code = 9
	CenterBack          Code = 10
)

// UnknownName labels players whose position is missing.
const UnknownName = "Sem posição"

const (
	otherPriority   = 99
	unknownPriority = 100
)

var names = map[Code]string{
	Goalkeeper:          "Goleiro",
	Defender:            "Defesa",
	Midfielder:          "Meio-campo",
	Forward:             "Ataque",
	FullBack:            "Lateral",
	DefensiveMidfielder: "Volante",
	AttackingMidfielder: "Meia",
	Striker:             "Centroavante",
	Winger:              "Ponta",
	CenterBack:          "Zagueiro",
}

var priorities = map[Code]int{
	Goalkeeper:          1,
	CenterBack:          2,
	Defender:            3,
	FullBack:            4,
	DefensiveMidfielder: 5,
	Midfielder:          6,
	AttackingMidfielder: 7,
	Forward:             8,
	Striker:             9,
	Winger:              10,
}

var (
	byFoldedName = func() map[string]Code {
		out := make(map[string]Code, len(names))
		for code, name := range names {
			out[slug.Normalize(name)] = code
		}
		return out
	}()
	titleCaser = cases.Title(language.BrazilianPortuguese)
)

// Position is a normalized position. Code is zero for free-text positions
// outside the table and for Unknown.
type Position struct {
	Code Code
	Name string
}

var Unknown = Position{Name: UnknownName}

// Codes returns the table codes in display order.
func Codes() []Code {
	codes := make([]Code, 0, len(priorities))
	for code := range priorities {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return priorities[codes[i]] < priorities[codes[j]] })
	return codes
}

// Name returns the display name of a table code.
func (c Code) Name() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Posição %d", int(c))
}

func (p Position) IsUnknown() bool {
	return p == Unknown
}

// Priority orders groups: table positions first, other named positions
// next, Unknown last.
func (p Position) Priority() int {
	if priority, ok := priorities[p.Code]; ok {
		return priority
	}
	if p.IsUnknown() {
		return unknownPriority
	}
	return otherPriority
}

func FromCode(code Code) Position {
	if name, ok := names[code]; ok {
		return Position{Code: code, Name: name}
	}
	if code <= 0 {
		return Unknown
	}
	return Position{Name: code.Name()}
}

// FromText accepts a numeric code in text form, a table name in any case or
// accentuation, or a free-text position, which is title-cased.
func FromText(text string) Position {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unknown
	}
	if n, err := strconv.Atoi(text); err == nil {
		return FromCode(Code(n))
	}
	if code, ok := byFoldedName[slug.Normalize(text)]; ok {
		return FromCode(code)
	}
	return Position{Name: titleCaser.String(strings.ToLower(text))}
}

// Parse normalizes a single position value: a number, a string, or an
// object carrying id or nome.
func Parse(value gjson.Result) Position {
	switch value.Type {
	case gjson.Number:
		return FromCode(Code(value.Int()))
	case gjson.String:
		return FromText(value.String())
	case gjson.JSON:
		if value.IsObject() {
			if id := value.Get("id"); id.Exists() && id.Type != gjson.Null {
				return Parse(id)
			}
			return Parse(value.Get("nome"))
		}
	}
	return Unknown
}

var playerKeys = []string{
	"posicao",
	"posicao_id",
	"time_jogador.posicao",
	"time_jogador.posicao_id",
}

// FromPlayer finds the position of a player object under any of the key
// names the API uses.
func FromPlayer(player gjson.Result) Position {
	for _, key := range playerKeys {
		value := player.Get(key)
		if !value.Exists() || value.Type == gjson.Null {
			continue
		}
		if position := Parse(value); !position.IsUnknown() {
			return position
		}
	}
	return Unknown
}

type Group[T any] struct {
	Position Position
	Members  []T
}

// GroupBy buckets items by position. Groups follow Priority, then name;
// members are sorted case-insensitively by name. No item is dropped.
func GroupBy[T any](items []T, position func(T) Position, name func(T) string) []Group[T] {
	index := make(map[Position]int)
	var groups []Group[T]
	for _, item := range items {
		pos := position(item)
		i, ok := index[pos]
		if !ok {
			i = len(groups)
			index[pos] = i
			groups = append(groups, Group[T]{Position: pos})
		}
		groups[i].Members = append(groups[i].Members, item)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		pi, pj := groups[i].Position.Priority(), groups[j].Position.Priority()
		if pi != pj {
			return pi < pj
		}
		return groups[i].Position.Name < groups[j].Position.Name
	})
	for _, group := range groups {
		members := group.Members
		sort.SliceStable(members, func(i, j int) bool {
			return strings.ToLower(name(members[i])) < strings.ToLower(name(members[j]))
		})
	}
	return groups
}
