package conversion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RealLeviticus/dahextractor/internal/dah"
	"github.com/RealLeviticus/dahextractor/internal/vatglasses"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

// Service runs the conversion pipeline. Parsing and conversion are pure;
// persistence and caching are best-effort side channels that never fail a
// conversion.
type Service struct {
	converter *vatglasses.Converter
	store     Store
	cache     *recordCache
	logger    *logger.Logger
}

// NewService creates a new conversion service. store may be nil, in which
// case results are returned but not persisted.
func NewService(converter *vatglasses.Converter, store Store, cacheTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		converter: converter,
		store:     store,
		cache:     newRecordCache(cacheTTL),
		logger:    log.Named("conversion"),
	}
}

// Detect classifies document text without parsing it
func (s *Service) Detect(text string) dah.Format {
	return dah.Detect(text)
}

// Validate runs the non-throwing validation pass over a VATGlasses JSON
// document
func (s *Service) Validate(data []byte) vatglasses.ValidationResult {
	return vatglasses.Validate(data)
}

// Convert runs one document through the full pipeline. A caller-supplied
// format hint overrides content detection when it names a concrete format;
// text-like hints leave detection in charge. The only fatal failure is a
// FormatError from the parsing strategy; everything downstream degrades to
// warnings.
func (s *Service) Convert(req Request) (*Result, error) {
	format, forced := dah.HintFormat(req.FormatHint)
	if !forced {
		format = dah.Detect(req.Text)
	}

	doc, err := dah.ParseFormat(req.Text, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document %q: %w", format, req.Source, err)
	}

	output := s.converter.Convert(doc, req.Source)

	raw, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output for %q: %w", req.Source, err)
	}

	validation := vatglasses.Validate(raw)

	record := &Record{
		ID:            uuid.NewString(),
		Source:        req.Source,
		Format:        format.String(),
		AirspaceCount: len(output.Airspace),
		PositionCount: len(output.Positions),
		AirportCount:  len(output.Airports),
		WarningCount:  len(validation.Warnings),
		Valid:         validation.Valid,
		Output:        raw,
		CreatedAt:     time.Now().UTC(),
	}

	// Persistence is provenance, not part of the conversion contract; a
	// storage failure must not discard a produced result.
	if s.store != nil {
		if err := s.store.SaveConversion(record); err != nil {
			s.logger.Error("Failed to persist conversion record",
				logger.String("id", record.ID),
				logger.Error(err))
		}
	}
	s.cache.put(record)

	s.logger.Info("Converted document",
		logger.String("id", record.ID),
		logger.String("source", req.Source),
		logger.String("format", record.Format),
		logger.Int("airspace", record.AirspaceCount),
		logger.Int("warnings", record.WarningCount))

	return &Result{
		Record:     record,
		Output:     raw,
		Validation: validation,
	}, nil
}

// Get returns one conversion record, consulting the cache before storage
func (s *Service) Get(id string) (*Record, error) {
	if record := s.cache.get(id); record != nil {
		return record, nil
	}

	if s.store == nil {
		return nil, ErrNotFound
	}

	record, err := s.store.GetConversion(id)
	if err != nil {
		return nil, err
	}
	s.cache.put(record)

	return record, nil
}

// List returns the most recent conversion records
func (s *Service) List(limit int) ([]*Record, error) {
	if s.store == nil {
		return []*Record{}, nil
	}
	return s.store.ListConversions(limit)
}
