package tui

import (
	api "github.com/ensigniasec/reactions/internal/api"
	"github.com/ensigniasec/reactions/internal/rating"
)

// Message types for Bubble Tea update loop.

// settleTickMsg advances the settle animation identified by Gen.
type settleTickMsg struct{ Gen uint64 }

// recordMsg carries the fetched record; nil means it could not be loaded.
type recordMsg struct{ Record *api.Record }

// submitResultMsg carries the outcome of a submission.
type submitResultMsg struct{ Notification rating.Notification }

// nudgeReleaseMsg ends a keyboard drag if no nudge followed it.
type nudgeReleaseMsg struct{ Seq int }
