// Package scenario loads scripted candidate answers from a JSON file so a
// whole interview can be replayed without a human at the keyboard.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a scenario file. Two layouts are accepted: a bare JSON array of
// strings, or an object with a "messages" array.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("scenario file is empty")
	}

	var messages []string
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse scenario array: %w", err)
		}
	} else {
		var wrapper struct {
			Messages []string `json:"messages"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parse scenario object: %w", err)
		}
		messages = wrapper.Messages
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("scenario has no messages")
	}
	return messages, nil
}

// Answers replays scripted messages one per question and reports io.EOF when
// the script runs out.
type Answers struct {
	messages []string
	next     int
}

func NewAnswers(messages []string) *Answers {
	return &Answers{messages: messages}
}

func (a *Answers) NextAnswer(_ string) (string, error) {
	if a.next >= len(a.messages) {
		return "", io.EOF
	}
	answer := a.messages[a.next]
	a.next++
	return answer, nil
}

// Remaining reports how many scripted messages are left unplayed.
func (a *Answers) Remaining() int {
	return len(a.messages) - a.next
}
