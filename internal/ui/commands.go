package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/surf-terminal/internal/database"
	"github.com/ngmaloney/surf-terminal/internal/models"
)

// initiateProvisioning starts provisioning in the background and hands the
// progress and result channels to Update
func initiateProvisioning(dbPath string, opts database.ProvisionOptions) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan string, 16)
		resultChan := make(chan error, 1)

		go func() {
			err := database.Provision(dbPath, opts, progressChan, nil)
			close(progressChan)
			resultChan <- err
		}()

		return provisioningStartedMsg{progressChan: progressChan, resultChan: resultChan}
	}
}

// waitForProvisionStatus waits for the next progress line. A closed channel
// yields nil so the wait loop ends.
func waitForProvisionStatus(progressChan <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-progressChan
		if !ok {
			return nil
		}
		return provisionStatusMsg(status)
	}
}

// waitForProvisionResult waits for provisioning to finish
func waitForProvisionResult(resultChan <-chan error) tea.Cmd {
	return func() tea.Msg {
		return provisionResultMsg{err: <-resultChan}
	}
}

// loadSpots reads the spot catalog
func loadSpots(s SpotService) tea.Cmd {
	return func() tea.Msg {
		spots, err := s.List()
		return spotsLoadedMsg{spots: spots, err: err}
	}
}

// resolveSpot maps a free-text query onto a spot
func resolveSpot(s SpotService, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		res, err := s.Resolve(ctx, query)
		return spotResolvedMsg{resolution: res, err: err}
	}
}

// fetchReport builds the surf report for a spot
func fetchReport(b ReportBuilder, spot models.Spot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r, err := b.BuildSpotReport(ctx, spot)
		return reportFetchedMsg{report: r, err: err}
	}
}
