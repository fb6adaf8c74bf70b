// Package bot implements the command-response feature: text messages starting
// with the command prefix get an automatic reply appended to the feed.
package bot

import (
	"strings"
	"time"
)

const Prefix = "@chaos:"

type Responder struct {
	now func() time.Time
}

func New() *Responder {
	return &Responder{now: time.Now}
}

func NewWithClock(now func() time.Time) *Responder {
	return &Responder{now: now}
}

// Reply returns the response for a recognized command message. ok is false
// when the content does not carry the command prefix at all.
func (b *Responder) Reply(content string) (response string, ok bool) {
	lowered := strings.ToLower(content)
	if !strings.HasPrefix(lowered, Prefix) {
		return "", false
	}
	cmd := strings.TrimSpace(strings.TrimPrefix(lowered, Prefix))

	switch {
	case strings.Contains(cmd, "weather"):
		return "Sunny today!", true
	case strings.Contains(cmd, "time"):
		return "Current time: " + b.now().Format("15:04:05"), true
	case strings.Contains(cmd, "hello"):
		return "Hello there!", true
	case strings.Contains(cmd, "quote"):
		return "Life is what happens to you while you're busy making other plans.", true
	case strings.Contains(cmd, "mood"):
		return "Excellent!", true
	}
	return "Command not recognized.", true
}
