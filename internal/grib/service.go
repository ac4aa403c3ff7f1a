package grib

import (
	"context"
	"fmt"
	"log"
	"net/url"
)

// Fetcher resolves a source URL to a local file path. The download
// boundary behind it owns retries, caching and temp-file management;
// the extraction core never retries.
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL string) (string, error)
}

// Service orchestrates one extraction per requested parameter: fetch the
// GRIB file for an area, open it, run the pipeline, release the handle.
type Service struct {
	fetcher   Fetcher
	open      DatasetOpener
	extractor *Extractor
	baseURL   string
}

// NewService creates a Service. baseURL is the gribfiles product root,
// e.g. "https://api.met.no/weatherapi/gribfiles/1.1".
func NewService(fetcher Fetcher, open DatasetOpener, extractor *Extractor, baseURL string) *Service {
	return &Service{
		fetcher:   fetcher,
		open:      open,
		extractor: extractor,
		baseURL:   baseURL,
	}
}

// WaveData returns significant wave height for an area.
func (s *Service) WaveData(ctx context.Context, area string) (*GribResponse, error) {
	responses, err := s.extractArea(ctx, "waves", area, ParamWaveHeight)
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// WindData returns wind speed and wind direction for an area, in that
// order. Either one may be empty when its variable is absent; the other
// still carries data.
func (s *Service) WindData(ctx context.Context, area string) ([]*GribResponse, error) {
	return s.extractArea(ctx, "wind", area, ParamWindSpeed, ParamWindDirection)
}

// CurrentData returns sea-current speed and direction for an area.
func (s *Service) CurrentData(ctx context.Context, area string) ([]*GribResponse, error) {
	return s.extractArea(ctx, "current", area, ParamCurrentSpeed, ParamCurrentDirection)
}

// PrecipitationData returns precipitation amount for an area.
func (s *Service) PrecipitationData(ctx context.Context, area string) (*GribResponse, error) {
	responses, err := s.extractArea(ctx, "precipitation", area, ParamPrecipitation)
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// extractArea downloads the product file for (kind, area), opens it as a
// dataset scoped to this call, and extracts every requested parameter
// from the one handle.
func (s *Service) extractArea(ctx context.Context, kind, area string, params ...Parameter) ([]*GribResponse, error) {
	sourceURL := fmt.Sprintf("%s/%s?area=%s", s.baseURL, kind, url.QueryEscape(area))

	path, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s data for area %s: %w", kind, area, err)
	}

	ds, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s dataset for area %s: %w", kind, area, err)
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil {
			log.Printf("closing %s dataset for area %s: %v", kind, area, cerr)
		}
	}()

	responses, err := s.extractor.ExtractAll(ds, params...)
	if err != nil {
		return nil, fmt.Errorf("extracting %s data for area %s: %w", kind, area, err)
	}

	for _, r := range responses {
		log.Printf("extracted %d points for %s (area %s), range [%g, %g]",
			len(r.Data), r.Parameter, area, r.MinValue, r.MaxValue)
	}
	return responses, nil
}
