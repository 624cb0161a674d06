package main

import (
	"fmt"
	"strings"

	"taikai/internal/tourney"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	heading = color.New(color.FgHiWhite, color.Bold)
	neutral = color.New(color.FgHiWhite)
	faint   = color.New(color.FgWhite)
)

func printRoster(teams []tourney.Team) {
	heading.Println("出場チーム")
	for _, team := range teams {
		accent.Printf("  %s\n", team.Name)
		faint.Printf("    %s\n", strings.Join(team.Players[:], " / "))
	}
	fmt.Println()
}

func printSchedule(configs []tourney.RoundConfig, teams []tourney.Team) {
	byID := make(map[int]string, len(teams))
	for _, team := range teams {
		byID[team.ID] = team.Name
	}

	heading.Println("対戦スケジュール")
	for _, cfg := range configs {
		neutral.Printf("  第%d回戦  ", cfg.Round)
		parts := make([]string, 0, len(cfg.Pairings))
		for _, pair := range cfg.Pairings {
			parts = append(parts, fmt.Sprintf("%s vs %s", byID[pair[0]], byID[pair[1]]))
		}
		fmt.Println(strings.Join(parts, "　／　"))
	}
}
