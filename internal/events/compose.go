package events

import "time"

// ComposeStart is emitted before SDL documents are composed.
type ComposeStart struct {
	Documents []string
}

// ComposeFinish is emitted after composition, successful or not.
type ComposeFinish struct {
	Documents []string
	Conflicts []string
	Err       error
	Duration  time.Duration
}
