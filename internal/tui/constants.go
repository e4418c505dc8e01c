package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	// cellWidth is the number of terminal columns given to each reaction.
	cellWidth = 10
	// trackLeftMargin is the column where the first reaction cell starts.
	trackLeftMargin = 2

	// nudgeUnits is how far one keyboard nudge drags the handle, in track units.
	nudgeUnits = 8
	// nudgeReleaseMS is the idle time after which a keyboard drag is released.
	nudgeReleaseMS = 350

	// smallIconMinScale hides a small icon once the handle shrinks it below this scale.
	smallIconMinScale = 0.6
	// labelDropOffset moves a label down one row at this vertical offset.
	labelDropOffset = 5

	identifierCharLimit = 254
	identifierWidth     = 40

	nudgeReleaseInterval = time.Duration(nudgeReleaseMS) * time.Millisecond
)

// Colors shared by the view.
const (
	colorHandle     = "#ffb18d"
	colorBackground = "#ffffff"
	colorLine       = "#eeeeee"
	colorAccent     = "#841584"
	colorMuted      = "241"
	colorSuccess    = "46"
	colorWarn       = "208"
	colorError      = "196"
)
