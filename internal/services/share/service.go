package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mcoot/skyjoscore/internal/model"
)

// snapshotVersion guards the wire format of encoded snapshots
const snapshotVersion = 1

// snapshot is the serialized form of a session for share links. Field
// order and integer types round-trip losslessly through JSON + base64url.
type snapshot struct {
	Version     int              `json:"v"`
	Players     []string         `json:"players"`
	TotalRounds int              `json:"total_rounds"`
	Rounds      []map[string]int `json:"rounds"`
	Phase       string           `json:"phase"`
}

// Service encodes a session to a URL-safe string and back, so scoring can
// move between devices mid-game
type Service struct{}

// New creates a new share Service
func New() *Service {
	return &Service{}
}

// Encode serializes the session state (players, round count, scores,
// phase) to a base64url string
func (s *Service) Encode(session *model.Session) (string, error) {
	snap := snapshot{
		Version:     snapshotVersion,
		Players:     session.PlayerNames(),
		TotalRounds: session.TotalRounds,
		Rounds:      make([]map[string]int, len(session.Rounds)),
		Phase:       string(session.Phase),
	}
	for i, round := range session.Rounds {
		snap.Rounds[i] = round
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode parses an encoded snapshot and rebuilds the session state after
// checking every session invariant. The returned session carries no code;
// the caller stores it under a fresh one.
func (s *Service) Decode(encoded string) (*model.Session, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}

	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", model.ErrInvalidSnapshot, snap.Version)
	}

	session := &model.Session{
		Players:     make([]model.Player, len(snap.Players)),
		TotalRounds: snap.TotalRounds,
		Rounds:      make([]model.Round, len(snap.Rounds)),
		Phase:       model.Phase(snap.Phase),
	}
	for i, name := range snap.Players {
		session.Players[i] = model.Player{Name: name, Order: i}
	}
	for i, round := range snap.Rounds {
		session.Rounds[i] = round
	}

	if err := validate(session); err != nil {
		return nil, err
	}
	return session, nil
}

// validate enforces the session invariants on decoded state
func validate(session *model.Session) error {
	switch session.Phase {
	case model.PhaseSetup, model.PhaseInProgress, model.PhaseCompleted:
	default:
		return fmt.Errorf("%w: unknown phase %q", model.ErrInvalidSnapshot, session.Phase)
	}

	if session.Phase == model.PhaseSetup {
		if len(session.Players) != 0 || len(session.Rounds) != 0 {
			return fmt.Errorf("%w: setup phase must carry no players or scores", model.ErrInvalidSnapshot)
		}
		return nil
	}

	if len(session.Players) < model.MinPlayers || len(session.Players) > model.MaxPlayers {
		return fmt.Errorf("%w: player count %d out of range", model.ErrInvalidSnapshot, len(session.Players))
	}
	seen := make(map[string]bool, len(session.Players))
	for _, p := range session.Players {
		if p.Name == "" || seen[p.Name] {
			return fmt.Errorf("%w: player names must be non-empty and unique", model.ErrInvalidSnapshot)
		}
		seen[p.Name] = true
	}

	if session.TotalRounds < 1 {
		return fmt.Errorf("%w: round count %d out of range", model.ErrInvalidSnapshot, session.TotalRounds)
	}
	if len(session.Rounds) > session.TotalRounds {
		return fmt.Errorf("%w: %d rounds recorded for a %d-round game", model.ErrInvalidSnapshot, len(session.Rounds), session.TotalRounds)
	}

	// Every committed round must hold exactly one score per player
	for i, round := range session.Rounds {
		if len(round) != len(session.Players) {
			return fmt.Errorf("%w: round %d has %d scores for %d players", model.ErrInvalidSnapshot, i+1, len(round), len(session.Players))
		}
		for name := range round {
			if !seen[name] {
				return fmt.Errorf("%w: round %d scores unknown player %q", model.ErrInvalidSnapshot, i+1, name)
			}
		}
	}

	completed := len(session.Rounds) == session.TotalRounds
	if completed != (session.Phase == model.PhaseCompleted) {
		return fmt.Errorf("%w: phase %q does not match %d/%d rounds", model.ErrInvalidSnapshot, session.Phase, len(session.Rounds), session.TotalRounds)
	}

	return nil
}
