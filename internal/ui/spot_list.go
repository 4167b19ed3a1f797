package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

// spotItem wraps a Spot for use in a list
type spotItem struct {
	spot models.Spot
}

// FilterValue implements list.Item
func (s spotItem) FilterValue() string {
	return s.spot.ID + " " + s.spot.Name + " " + s.spot.Region
}

// Title implements list.DefaultItem
func (s spotItem) Title() string {
	return s.spot.Name
}

// Description implements list.DefaultItem
func (s spotItem) Description() string {
	return fmt.Sprintf("%s • %s • 面向 %.0f°", s.spot.Region, s.spot.ID, s.spot.BeachFacing)
}

// createSpotList creates a filterable list.Model from spots
func createSpotList(spots []models.Spot, width, height int) list.Model {
	items := make([]list.Item, len(spots))
	for i, spot := range spots {
		items[i] = spotItem{spot: spot}
	}

	l := list.New(items, list.NewDefaultDelegate(), max(width, 20), max(height, 5))
	l.Title = "選擇浪點"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
