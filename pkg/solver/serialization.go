package solver

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cardroom/holdem-engine/pkg/notation"
)

// serializableAction is a JSON-friendly representation of an Action.
type serializableAction struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount,omitempty"`
}

// serializableActionProb pairs an action with its solved frequency.
type serializableActionProb struct {
	Action      serializableAction `json:"action"`
	Probability float64            `json:"probability"`
	EV          float64            `json:"ev"`
}

// serializableResult is the on-disk form of a Result.
type serializableResult struct {
	Version        string                              `json:"version"`
	Strategies     map[string][]serializableActionProb `json:"strategies"`
	Exploitability float64                             `json:"exploitability"`
	Iterations     int                                 `json:"iterations"`
	InfoSets       int                                 `json:"infosets"`
	ElapsedMS      int64                               `json:"elapsed_ms"`
}

const resultVersion = "1"

func actionTypeToString(t notation.ActionType) string {
	switch t {
	case notation.Check:
		return "check"
	case notation.Call:
		return "call"
	case notation.Bet:
		return "bet"
	case notation.Raise:
		return "raise"
	case notation.Fold:
		return "fold"
	default:
		return "unknown"
	}
}

func stringToActionType(s string) (notation.ActionType, error) {
	switch s {
	case "check":
		return notation.Check, nil
	case "call":
		return notation.Call, nil
	case "bet":
		return notation.Bet, nil
	case "raise":
		return notation.Raise, nil
	case "fold":
		return notation.Fold, nil
	default:
		return 0, fmt.Errorf("unknown action type %q", s)
	}
}

// MarshalResult encodes a result as versioned JSON.
func MarshalResult(res *Result) ([]byte, error) {
	sr := serializableResult{
		Version:        resultVersion,
		Strategies:     make(map[string][]serializableActionProb, len(res.Strategies)),
		Exploitability: res.Exploitability,
		Iterations:     res.Iterations,
		InfoSets:       res.InfoSets,
		ElapsedMS:      res.Elapsed.Milliseconds(),
	}
	for key, probs := range res.Strategies {
		out := make([]serializableActionProb, len(probs))
		for i, p := range probs {
			out[i] = serializableActionProb{
				Action: serializableAction{
					Type:   actionTypeToString(p.Action.Type),
					Amount: p.Action.Amount,
				},
				Probability: p.Probability,
				EV:          p.EV,
			}
		}
		sr.Strategies[key] = out
	}
	return json.MarshalIndent(sr, "", "  ")
}

// UnmarshalResult decodes a result produced by MarshalResult.
func UnmarshalResult(data []byte) (*Result, error) {
	var sr serializableResult
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("error decoding result: %w", err)
	}

	res := &Result{
		Strategies:     make(map[string][]ActionProb, len(sr.Strategies)),
		Exploitability: sr.Exploitability,
		Iterations:     sr.Iterations,
		InfoSets:       sr.InfoSets,
		Elapsed:        time.Duration(sr.ElapsedMS) * time.Millisecond,
	}
	for key, probs := range sr.Strategies {
		out := make([]ActionProb, len(probs))
		for i, p := range probs {
			t, err := stringToActionType(p.Action.Type)
			if err != nil {
				return nil, err
			}
			out[i] = ActionProb{
				Action:      notation.Action{Type: t, Amount: p.Action.Amount},
				Probability: p.Probability,
				EV:          p.EV,
			}
		}
		res.Strategies[key] = out
	}
	return res, nil
}

// SaveResult writes a result to a JSON file.
func SaveResult(path string, res *Result) error {
	data, err := MarshalResult(res)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing result file: %w", err)
	}
	return nil
}

// LoadResult reads a result written by SaveResult.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading result file: %w", err)
	}
	return UnmarshalResult(data)
}
