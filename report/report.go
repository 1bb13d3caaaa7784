// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/pageant/models"
	"github.com/danielhkuo/pageant/scoring"
)

// Results is everything the report prints.
type Results struct {
	Categories     []models.Category
	CandidateCount int
	JurorCount     int
	Rankings       []models.Ranking
	Statistics     models.Statistics
	HasData        bool
}

// Collect reads the roster, rankings and statistics from the service.
func Collect(ctx context.Context, svc *scoring.Service) (Results, error) {
	cats, err := svc.ListCategories(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("failed to list categories: %w", err)
	}
	cands, err := svc.ListCandidates(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("failed to list candidates: %w", err)
	}
	jurors, err := svc.ListJurors(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("failed to list jurors: %w", err)
	}

	rankings, err := svc.RankCandidates(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("failed to rank candidates: %w", err)
	}
	stats, ok, err := svc.ComputeStatistics(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return Results{
		Categories:     cats,
		CandidateCount: len(cands),
		JurorCount:     len(jurors),
		Rankings:       rankings,
		Statistics:     stats,
		HasData:        ok,
	}, nil
}

// Render writes the ranking table and statistics. now anchors relative times.
func Render(w io.Writer, res Results, now time.Time) {
	heading := color.New(color.FgYellow, color.Bold)

	heading.Fprintln(w, "Contest")
	fmt.Fprintf(w, "Candidates:       %d\n", res.CandidateCount)
	fmt.Fprintf(w, "Jurors:           %d\n", res.JurorCount)
	fmt.Fprintf(w, "Categories:       %s\n", categoryList(res.Categories))

	heading.Fprintln(w, "\nRankings")
	if !res.HasData {
		color.New(color.FgHiBlack).Fprintln(w, "No evaluations yet.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Place", "Candidate", "Average", "Evaluations"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range res.Rankings {
		table.Append([]string{
			humanize.Ordinal(r.Rank),
			r.Candidate.FullName(),
			formatScore(r.Average),
			strconv.Itoa(r.EvaluationCount),
		})
	}
	table.Render()

	s := res.Statistics
	heading.Fprintln(w, "\nStatistics")
	fmt.Fprintf(w, "Global mean:      %s\n", formatScore(s.GlobalMean))
	fmt.Fprintf(w, "Strictest juror:  %s (%s over %d)\n",
		s.StrictestJuror.Name, formatScore(s.StrictestJuror.Average), s.StrictestJuror.EvaluationCount)
	fmt.Fprintf(w, "Best candidate:   %s (%s over %d)\n",
		s.BestCandidate.Name, formatScore(s.BestCandidate.Average), s.BestCandidate.EvaluationCount)
	fmt.Fprintf(w, "Evaluations:      %s\n", humanize.Comma(int64(s.TotalEvaluations)))
	fmt.Fprintf(w, "Last evaluation:  %s\n", humanize.RelTime(s.LatestEvaluationAt, now, "ago", "from now"))
}

func categoryList(cats []models.Category) string {
	if len(cats) == 0 {
		return "none"
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
