package sink

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"random-pairs-service/internal/domain"
)

// RenderTable печатает туры в виде таблицы для терминала.
func RenderTable(w io.Writer, rounds []domain.Round) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Round", "Participant 1", "Participant 2"})
	table.SetAutoMergeCells(true)
	table.SetRowLine(true)
	for _, round := range rounds {
		num := strconv.Itoa(round.Number)
		for _, p := range round.Pairs {
			table.Append([]string{num, p.First.String(), p.Second.String()})
		}
	}
	table.Render()
}
