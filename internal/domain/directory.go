package domain

import "context"

// StationDirectory provides station metadata.
type StationDirectory interface {
	// FetchStations returns every known station. An empty slice with a nil
	// error means the directory answered but listed nothing.
	FetchStations(ctx context.Context) ([]StationInfo, error)
}
