package tourney

import "sort"

// Match points: 3+ slot wins takes the match (2 points), a 2-2 split is the
// draw case (1 point each), 1 or fewer wins scores nothing.
const (
	PointsMatchWin  = 2
	PointsMatchDraw = 1
)

type TeamStanding struct {
	Team           Team `json:"team"`
	Rank           int  `json:"rank"`
	Points         int  `json:"points"`
	IndividualWins int  `json:"individual_wins"`
}

type PlayerStanding struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	TeamID int    `json:"team_id"`
	Wins   int    `json:"wins"`
}

type Standings struct {
	Teams   []TeamStanding   `json:"teams"`
	Players []PlayerStanding `json:"players"`
}

// ComputeStandings derives the final team ranking and player leaderboard
// from the round history. Teams sort by points, then individual wins; ties
// beyond that keep roster order (deliberately unspecified further). Player
// ranks use competition ranking: equal win counts share a rank and the next
// distinct count skips past them.
func ComputeStandings(teams []Team, rounds []Round) Standings {
	teamRows := make([]TeamStanding, 0, len(teams))
	for _, team := range teams {
		row := TeamStanding{Team: team}
		for _, round := range rounds {
			for i := range round.Matches {
				match := &round.Matches[i]
				if !match.HasTeam(team.ID) {
					continue
				}
				myWins := match.Score(team.ID)
				row.IndividualWins += myWins
				switch {
				case myWins >= 3:
					row.Points += PointsMatchWin
				case myWins == 2:
					row.Points += PointsMatchDraw
				}
			}
		}
		teamRows = append(teamRows, row)
	}
	sort.SliceStable(teamRows, func(i, j int) bool {
		if teamRows[i].Points != teamRows[j].Points {
			return teamRows[i].Points > teamRows[j].Points
		}
		return teamRows[i].IndividualWins > teamRows[j].IndividualWins
	})
	for i := range teamRows {
		teamRows[i].Rank = i + 1
	}

	return Standings{
		Teams:   teamRows,
		Players: playerLeaderboard(teams, rounds),
	}
}

func playerLeaderboard(teams []Team, rounds []Round) []PlayerStanding {
	rows := make([]PlayerStanding, 0, len(teams)*NumSlots)
	index := make(map[string]int, len(teams)*NumSlots)
	for _, team := range teams {
		for _, name := range team.Players {
			index[name] = len(rows)
			rows = append(rows, PlayerStanding{Name: name, TeamID: team.ID})
		}
	}

	for _, round := range rounds {
		for i := range round.Matches {
			match := &round.Matches[i]
			for _, res := range match.Results {
				if !res.Reported() {
					continue
				}
				order, ok := match.Order(res.Winner)
				if !ok {
					continue
				}
				if idx, known := index[order.Player(res.Slot)]; known {
					rows[idx].Wins++
				}
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Wins > rows[j].Wins
	})
	assignCompetitionRanks(rows)
	return rows
}

// assignCompetitionRanks expects rows sorted by wins descending and yields
// sequences like 1,1,3,4,4,6 for win counts 5,5,4,3,3,2.
func assignCompetitionRanks(rows []PlayerStanding) {
	prevWins := -1
	prevRank := 0
	for i := range rows {
		if rows[i].Wins == prevWins {
			rows[i].Rank = prevRank
			continue
		}
		rows[i].Rank = i + 1
		prevRank = rows[i].Rank
		prevWins = rows[i].Wins
	}
}
