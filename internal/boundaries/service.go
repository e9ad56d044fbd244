package boundaries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/boundary-importer/internal/metrics"
	"carbon-scribe/project-portal/boundary-importer/internal/notifications"
	"carbon-scribe/project-portal/boundary-importer/pkg/geospatial"
	"carbon-scribe/project-portal/boundary-importer/pkg/workflows"
)

// Service imports a field boundary from an uploaded file
type Service interface {
	Import(ctx context.Context, file RawFile) Outcome
}

type importService struct {
	decoder   ShapefileDecoder
	notifier  notifications.Notifier
	lifecycle *workflows.StateMachine
	logger    *zap.Logger
}

// NewService creates a boundary import service. notifier may be nil.
func NewService(decoder ShapefileDecoder, notifier notifications.Notifier, logger *zap.Logger) Service {
	return &importService{
		decoder:   decoder,
		notifier:  notifier,
		lifecycle: workflows.NewImportStateMachine(),
		logger:    logger,
	}
}

// Import runs dispatch, extraction and validation for one file. It never
// returns a Go error; every terminal state is an Outcome.
func (s *importService) Import(ctx context.Context, file RawFile) Outcome {
	started := time.Now()
	format := DetectFormat(file.Name)
	run := s.lifecycle.Start()
	s.advance(run, workflows.StateDispatched, file.Name)

	outcome := s.process(ctx, run, format, file)

	result := metrics.ResultSuccess
	if !outcome.Succeeded() {
		result = string(outcome.Err.Kind)
		s.advance(run, workflows.StateFailed, file.Name)
		s.logger.Warn("Boundary import failed",
			zap.String("file", file.Name),
			zap.String("format", string(format)),
			zap.String("kind", string(outcome.Err.Kind)),
			zap.Error(outcome.Err),
		)
	} else {
		s.advance(run, workflows.StateSucceeded, file.Name)
		s.logger.Info("Boundary imported",
			zap.String("file", file.Name),
			zap.String("format", string(format)),
			zap.String("geometry_type", geospatial.TypeName(outcome.Geometry)),
			zap.Float64("area_hectares", outcome.AreaHectares),
		)
	}
	metrics.ObserveImport(string(format), result, time.Since(started).Seconds())

	if s.notifier != nil {
		s.notifier.Notify(ctx, outcome.Event())
	}
	return outcome
}

func (s *importService) process(ctx context.Context, run *workflows.Run, format Format, file RawFile) Outcome {
	switch format {
	case FormatUnknown:
		return failed(unsupportedFileFormat(file.Name))
	case FormatBareShapefileUnsupported:
		return failed(bareShapefileUnsupported(file.Name))
	}

	data, err := readContent(file.Content)
	if err != nil {
		return failed(parseError(string(format), err))
	}
	metrics.UploadBytes.WithLabelValues(string(format)).Observe(float64(len(data)))

	geometry, err := s.extract(ctx, format, data)
	if err != nil {
		return failed(asImportError(err))
	}
	s.advance(run, workflows.StateExtracted, file.Name)

	geometry, err = ValidateGeometry(geometry)
	if err != nil {
		return failed(asImportError(err))
	}
	s.advance(run, workflows.StateValidated, file.Name)

	return Outcome{
		Geometry:       geometry,
		SourceFileName: file.Name,
		AreaHectares:   geospatial.ConvertToHectares(geospatial.CalculateArea(geometry)),
	}
}

func (s *importService) extract(ctx context.Context, format Format, data []byte) (orb.Geometry, error) {
	switch format {
	case FormatGeoJSON:
		return ExtractGeoJSON(data)
	case FormatKML:
		return ExtractKML(data)
	case FormatZippedShapefile:
		if s.decoder == nil {
			return nil, externalDecodeError(errors.New("no shapefile decoder configured"))
		}
		return ExtractShapefile(ctx, s.decoder, data)
	default:
		return nil, unsupportedFileFormat(string(format))
	}
}

func (s *importService) advance(run *workflows.Run, to, fileName string) {
	from := run.Current()
	if err := run.Advance(to); err != nil {
		s.logger.Error("Import lifecycle violation", zap.String("file", fileName), zap.Error(err))
		return
	}
	s.logger.Debug("Import state changed",
		zap.String("file", fileName),
		zap.String("from", from),
		zap.String("to", to),
	)
}

func readContent(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("file has no content")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func asImportError(err error) *ImportError {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie
	}
	return &ImportError{Kind: KindParseError, Message: err.Error(), Err: err}
}

func failed(err *ImportError) Outcome {
	return Outcome{Err: err}
}
