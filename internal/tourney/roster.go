package tourney

// DefaultReportPassword gates result reports. It is a shared room secret to
// slow down accidental submissions, not a security control.
const DefaultReportPassword = "4567"

// DefaultTeams is the fixed winter-camp roster: four teams of four players.
func DefaultTeams() []Team {
	return []Team{
		{
			ID:      1,
			Name:    "チーム①",
			Players: [NumSlots]string{"下田聖", "下村篤生", "布施皓己", "熱田望"},
		},
		{
			ID:      2,
			Name:    "チーム②",
			Players: [NumSlots]string{"小畑貴慈", "片山幸典", "岩間悠希", "松井俐真"},
		},
		{
			ID:      3,
			Name:    "チーム③",
			Players: [NumSlots]string{"大庭悠誠", "棚瀬侑真", "秋山七星", "中野琥太郎"},
		},
		{
			ID:      4,
			Name:    "チーム④",
			Players: [NumSlots]string{"高木翔玄", "龍口直史", "池田大翔", "槇啓秀"},
		},
	}
}

// DefaultRoundConfigs covers all six unordered team pairs across three
// rounds, two matches per round.
func DefaultRoundConfigs() []RoundConfig {
	return []RoundConfig{
		{Round: 1, Pairings: [2][2]int{{1, 2}, {3, 4}}},
		{Round: 2, Pairings: [2][2]int{{1, 3}, {2, 4}}},
		{Round: 3, Pairings: [2][2]int{{1, 4}, {2, 3}}},
	}
}
