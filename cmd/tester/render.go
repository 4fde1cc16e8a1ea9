package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// RenderBoard prints one row per seat with where its pawns stand.
func RenderBoard(w io.Writer, session map[string]any, painter Painter) {
	table := newTable(w)
	table.SetHeader([]string{"Seat", "Player", "Color", "Home", "Track", "Finished"})
	for seat, p := range players(session) {
		pawnColor, _ := p["color"].(string)
		home, track, finished := 0, []string{}, 0
		pawns, _ := p["pawns"].([]any)
		for _, raw := range pawns {
			pawn, _ := raw.(map[string]any)
			switch pawn["state"] {
			case "at_home":
				home++
			case "on_track":
				track = append(track, fmt.Sprint(num(pawn["index"])))
			case "finished":
				finished++
			}
		}
		name, _ := p["name"].(string)
		table.Append([]string{
			fmt.Sprint(seat),
			name,
			painter.Seat(pawnColor, pawnColor),
			fmt.Sprint(home),
			fmt.Sprint(track),
			fmt.Sprint(finished),
		})
	}
	table.Render()
}

// RenderStats prints the operator stats sorted by key.
func RenderStats(w io.Writer, stats map[string]any) {
	table := newTable(w)
	table.SetHeader([]string{"Metric", "Value"})
	keys := lo.Keys(stats)
	sort.Strings(keys)
	for _, k := range keys {
		table.Append([]string{k, fmt.Sprint(stats[k])})
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
