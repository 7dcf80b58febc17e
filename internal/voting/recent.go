package voting

// MaxRecent caps the recent-votes list kept in the session.
const MaxRecent = 5

// RecentVote is the session copy of a vote this browser created, used to
// find the round of a vote when the API does not echo it.
type RecentVote struct {
	ID       int64  `json:"id"`
	RoundID  int64  `json:"rodada_id"`
	Kind     string `json:"tipo"`
	OpensAt  string `json:"abre_em"`
	ClosesAt string `json:"fecha_em"`
}

// Remember puts vote at the front of recent, drops older entries with the
// same ID and keeps at most limit entries. limit <= 0 means MaxRecent.
func Remember(recent []RecentVote, vote RecentVote, limit int) []RecentVote {
	if limit <= 0 {
		limit = MaxRecent
	}
	out := make([]RecentVote, 0, limit)
	out = append(out, vote)
	for _, existing := range recent {
		if len(out) == limit {
			break
		}
		if existing.ID == vote.ID {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// RoundFor looks up the round of voteID in recent.
func RoundFor(recent []RecentVote, voteID int64) (int64, bool) {
	for _, vote := range recent {
		if vote.ID == voteID && vote.RoundID != 0 {
			return vote.RoundID, true
		}
	}
	return 0, false
}
