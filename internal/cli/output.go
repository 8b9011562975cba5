package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case []Standing:
		o.printStandings(v)
	case Chart:
		o.printChart(v)
	case Share:
		o.printShare(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Standing response type (matches API)
type Standing struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Total  int    `json:"total"`
}

// Session response type
type Session struct {
	Code            string           `json:"code"`
	Phase           string           `json:"phase"`
	Players         []string         `json:"players"`
	TotalRounds     int              `json:"total_rounds"`
	CurrentRound    int              `json:"current_round"`
	RoundsRemaining int              `json:"rounds_remaining"`
	Rounds          []map[string]int `json:"rounds"`
	Standings       []Standing       `json:"standings,omitempty"`
	Winner          *Standing        `json:"winner,omitempty"`
}

// ChartPoint response type
type ChartPoint struct {
	Round      int `json:"round"`
	Cumulative int `json:"cumulative"`
}

// ChartSeries response type
type ChartSeries struct {
	Player string       `json:"player"`
	Points []ChartPoint `json:"points"`
}

// Chart response type
type Chart struct {
	Series []ChartSeries `json:"series"`
}

// Share response type
type Share struct {
	Snapshot string `json:"snapshot"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Game: %s\n", s.Code)
	fmt.Printf("Phase: %s\n", s.Phase)

	if s.Phase == "setup" {
		fmt.Println("Waiting for players, configure the game to start")
		return
	}

	fmt.Printf("Players: %s\n", strings.Join(s.Players, ", "))
	if s.Phase == "completed" {
		fmt.Printf("Rounds: %d of %d played\n", len(s.Rounds), s.TotalRounds)
	} else {
		fmt.Printf("Round: %d of %d (%d to go)\n", s.CurrentRound, s.TotalRounds, s.RoundsRemaining)
	}

	if len(s.Rounds) > 0 {
		fmt.Println("\nScores:")
		o.printScoreTable(s)
	}

	if len(s.Standings) > 0 {
		fmt.Println("\nStandings:")
		o.printStandings(s.Standings)
	}

	if s.Winner != nil {
		fmt.Printf("\nWinner: %s with %d points\n", s.Winner.Player, s.Winner.Total)
	}
}

func (o *Output) printScoreTable(s Session) {
	widths := make([]int, len(s.Players))
	for i, name := range s.Players {
		widths[i] = len(name)
		if widths[i] < 4 {
			widths[i] = 4
		}
	}

	fmt.Printf("  %-8s", "Round")
	for i, name := range s.Players {
		fmt.Printf("  %*s", widths[i], name)
	}
	fmt.Println()

	for r, round := range s.Rounds {
		fmt.Printf("  %-8d", r+1)
		for i, name := range s.Players {
			fmt.Printf("  %*d", widths[i], round[name])
		}
		fmt.Println()
	}

	totals := make(map[string]int)
	for _, round := range s.Rounds {
		for name, score := range round {
			totals[name] += score
		}
	}
	fmt.Printf("  %-8s", "Total")
	for i, name := range s.Players {
		fmt.Printf("  %*d", widths[i], totals[name])
	}
	fmt.Println()
}

func (o *Output) printStandings(standings []Standing) {
	for _, s := range standings {
		marker := " "
		if s.Rank == 1 {
			marker = "*"
		}
		fmt.Printf("  %s %d. %s - %d\n", marker, s.Rank, s.Player, s.Total)
	}
}

func (o *Output) printChart(c Chart) {
	for _, series := range c.Series {
		fmt.Printf("%s:", series.Player)
		for _, p := range series.Points {
			fmt.Printf(" %d", p.Cumulative)
		}
		fmt.Println()
	}
}

func (o *Output) printShare(s Share) {
	fmt.Println(s.Snapshot)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
