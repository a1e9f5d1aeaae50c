package feeds

import (
	"errors"
	"fmt"
	"time"

	"release-sync/core/reconcile"
	"release-sync/core/utils"

	"github.com/goccy/go-yaml"
)

const (
	versionsKey = "versions"
	dateKey     = "date"
)

var (
	errNotMapping  = errors.New("feed is not a mapping")
	errMissingDate = errors.New("missing date")
)

// Decode parses a feed document read from location.
// Errors match reconcile.ErrInvalidInput.
func Decode(product, location string, data []byte) (*reconcile.Feed, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, reconcile.NewInputError(product, location, err)
	}

	feed := reconcile.NewFeed(location)
	if doc == nil {
		return feed, nil
	}
	items, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, reconcile.NewInputError(product, location, errNotMapping)
	}
	if nested, ok := versionsOf(items); ok {
		items = nested
	}

	for _, item := range items {
		version := utils.ToString(item.Key)
		date, err := dateOf(item.Value)
		if err != nil {
			return nil, reconcile.NewInputError(product, location, fmt.Errorf("version %q: %w", version, err))
		}
		feed.Set(version, date)
	}
	return feed, nil
}

// versionsOf returns the entries of a {"versions": {...}} document.
func versionsOf(items yaml.MapSlice) (yaml.MapSlice, bool) {
	if len(items) != 1 || utils.ToString(items[0].Key) != versionsKey {
		return nil, false
	}
	nested, ok := items[0].Value.(yaml.MapSlice)
	return nested, ok
}

func dateOf(value any) (time.Time, error) {
	if entry, ok := value.(yaml.MapSlice); ok {
		for _, field := range entry {
			if utils.ToString(field.Key) == dateKey {
				return utils.ToDate(field.Value)
			}
		}
		return time.Time{}, errMissingDate
	}
	return utils.ToDate(value)
}
