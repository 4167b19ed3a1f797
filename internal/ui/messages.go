package ui

import (
	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/spots"
)

// Message types for async operations

// provisioningStartedMsg carries the channels of a running provisioning job
type provisioningStartedMsg struct {
	progressChan chan string
	resultChan   chan error
}

// provisionStatusMsg is a progress line from provisioning
type provisionStatusMsg string

// provisionResultMsg is sent when provisioning finishes
type provisionResultMsg struct {
	err error
}

// spotsLoadedMsg is sent when the spot catalog has been read
type spotsLoadedMsg struct {
	spots []models.Spot
	err   error
}

// spotResolvedMsg is sent when a search query has been mapped to a spot
type spotResolvedMsg struct {
	resolution *spots.Resolution
	err        error
}

// reportFetchedMsg is sent when a spot report has been built
type reportFetchedMsg struct {
	report *report.SpotReport
	err    error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}
