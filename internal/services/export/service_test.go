package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/skyjoscore/internal/model"
)

func TestCSVExport(t *testing.T) {
	svc := New()
	session := &model.Session{
		Code: "GAME01",
		Players: []model.Player{
			{Name: "A", Order: 0},
			{Name: "B", Order: 1},
		},
		TotalRounds: 2,
		Rounds: []model.Round{
			{"A": 5, "B": 3},
			{"A": 1, "B": 10},
		},
		Phase: model.PhaseCompleted,
	}

	data, err := svc.CSV(session)
	require.NoError(t, err)

	expected := "Round,A,B\n" +
		"Round 1,5,3\n" +
		"Round 2,1,10\n" +
		"Total,6,13\n"
	assert.Equal(t, expected, string(data))
}

func TestCSVExportNegativeScores(t *testing.T) {
	svc := New()
	session := &model.Session{
		Players: []model.Player{
			{Name: "Alice", Order: 0},
			{Name: "Bob", Order: 1},
		},
		TotalRounds: 10,
		Rounds: []model.Round{
			{"Alice": -2, "Bob": 12},
		},
		Phase: model.PhaseInProgress,
	}

	data, err := svc.CSV(session)
	require.NoError(t, err)

	expected := "Round,Alice,Bob\n" +
		"Round 1,-2,12\n" +
		"Total,-2,12\n"
	assert.Equal(t, expected, string(data))
}

func TestCSVExportNoRoundsYet(t *testing.T) {
	svc := New()
	session := &model.Session{
		Players: []model.Player{
			{Name: "Alice", Order: 0},
			{Name: "Bob", Order: 1},
		},
		TotalRounds: 10,
		Rounds:      []model.Round{},
		Phase:       model.PhaseInProgress,
	}

	data, err := svc.CSV(session)
	require.NoError(t, err)

	expected := "Round,Alice,Bob\n" +
		"Total,0,0\n"
	assert.Equal(t, expected, string(data))
}

func TestFilename(t *testing.T) {
	svc := New()
	now := time.Date(2024, 3, 15, 18, 4, 5, 0, time.UTC)

	assert.Equal(t, "skyjo_scores_20240315_180405.csv", svc.Filename(now))
}
