package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-forecast/internal/analysis"
	"github.com/yourusername/clever-forecast/internal/models"
)

func renderResults(w io.Writer, results []*analysis.AnalysisResult, bankroll decimal.Decimal) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Fixture", "Signal", "H / D / A", "xG", "O2.5", "BTTS", "Best", "Odds", "Edge", "Kelly", "Stake", "Agree"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
		{Number: 10, Align: text.AlignRight},
		{Number: 11, Align: text.AlignRight},
		{Number: 12, Align: text.AlignRight},
		{Number: 13, Align: text.AlignRight},
	})

	for i, r := range results {
		best, odds, edge, kelly, stake := "-", "-", "-", "-", "-"
		if s, ok := r.HeadlineSignal(); ok {
			best = s.Market
			odds = fmt.Sprintf("%.2f", s.Odds)
			edge = fmt.Sprintf("%+.1f%%", s.Edge)
			kelly = fmt.Sprintf("%.2f%%", s.KellyStake)
			if amount := analysis.StakeFor(r, bankroll); amount.IsPositive() {
				stake = amount.StringFixed(2)
			}
		}

		t.AppendRow(table.Row{
			i + 1,
			fixtureLabel(r),
			strings.ToUpper(string(r.Signal)),
			fmt.Sprintf("%d / %d / %d", r.HomeWin, r.Draw, r.AwayWin),
			fmt.Sprintf("%.2f-%.2f", r.HomeXG, r.AwayXG),
			fmt.Sprintf("%d%%", r.Over25),
			fmt.Sprintf("%d%%", r.BTTS),
			best, odds, edge, kelly, stake,
			fmt.Sprintf("%.0f%%", r.Agreement),
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

func renderSkipped(w io.Writer, skipped []analysis.SkippedFixture) {
	if len(skipped) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Skipped")
	t.AppendHeader(table.Row{"Fixture", "Home", "Away", "Reason"})
	for _, s := range skipped {
		t.AppendRow(table.Row{s.FixtureID, s.HomeTeam, s.AwayTeam, s.Reason})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func renderTeams(w io.Writer, profiles []models.TeamProfile) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Key", "Name", "League", "Country", "Elo", "Squad (€m)", "Attack", "Defense", "Home adv."})
	for _, p := range profiles {
		t.AppendRow(table.Row{
			p.Key, p.Name, p.League, p.Country,
			fmt.Sprintf("%.0f", p.Elo),
			fmt.Sprintf("%.0f", p.SquadValue),
			fmt.Sprintf("%.2f", p.Attack),
			fmt.Sprintf("%.2f", p.Defense),
			fmt.Sprintf("%.2f", p.HomeAdvantage),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func fixtureLabel(r *analysis.AnalysisResult) string {
	label := r.HomeTeam + " vs " + r.AwayTeam
	if r.HomeSynthetic || r.AwaySynthetic {
		label += " *"
	}
	if r.League != "" {
		label = r.League + ": " + label
	}
	return label
}
