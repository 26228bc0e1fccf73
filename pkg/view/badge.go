package view

import "strings"

type BadgeKind string

const (
	BadgeResolved   BadgeKind = "resolved"
	BadgeInProgress BadgeKind = "in-progress"
	BadgeMuted      BadgeKind = "muted"
	BadgeDefault    BadgeKind = "default"
)

type Badge struct {
	Label string
	Kind  BadgeKind
}

// BadgeFor classifies an upstream status/type string into a badge style.
// Resolved and in-progress render as pills; settling/charge as muted text.
func BadgeFor(status string) Badge {
	b := Badge{Label: status, Kind: BadgeDefault}
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "resolved":
		b.Kind = BadgeResolved
	case "in-progress", "in progress":
		b.Kind = BadgeInProgress
	case "settling", "charge":
		b.Kind = BadgeMuted
	}
	return b
}
