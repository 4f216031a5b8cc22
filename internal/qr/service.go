// Package qr wires the payload codec to its collaborators: the image
// renderer and the scan history store.
package qr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/thaiqr/internal/history"
	"github.com/danmuck/thaiqr/internal/observability"
	"github.com/danmuck/thaiqr/internal/protocol"
	"github.com/danmuck/thaiqr/internal/protocol/schema"
	"github.com/danmuck/thaiqr/internal/render"
	"github.com/rs/zerolog/log"
)

// GenerationError wraps a renderer failure during Generate.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("qr: failed to generate Thai QR code: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// GenerationResult is an encoded payload and its rendered symbol.
type GenerationResult struct {
	QRString string       `json:"qrString"`
	Image    render.Image `json:"-"`
}

// ScanResult is a decoded payload plus its checksum verdict and, when a
// history store is configured, the history entry it was saved as.
type ScanResult struct {
	Data          *protocol.Data
	ChecksumValid bool
	ChecksumError error
	Item          *history.Item

	// UnknownTags lists top level tags missing from the dictionary.
	UnknownTags []string
}

// Service is safe for concurrent use when its Renderer is.
type Service struct {
	Renderer render.Renderer
	History  *history.Store
}

// NewService returns a service with renderer and an optional history store.
func NewService(renderer render.Renderer, store *history.Store) *Service {
	return &Service{Renderer: renderer, History: store}
}

// Scan decodes raw and records it under source.
func (s *Service) Scan(source history.Source, raw string) (ScanResult, error) {
	data, err := protocol.Decode(raw)
	if err != nil {
		observability.RecordDecode(string(source), observability.OutcomeInvalid, 0, false)
		log.Debug().Str("source", string(source)).Int("bytes", len(raw)).Err(err).Msg("decode rejected")
		return ScanResult{}, err
	}

	res := ScanResult{Data: data, UnknownTags: unknownTags(data)}
	res.ChecksumError = protocol.VerifyChecksum(raw)
	res.ChecksumValid = res.ChecksumError == nil
	observability.RecordDecode(string(source), observability.OutcomeOK, len(data.ParsedFields), res.ChecksumValid)

	if s.History != nil {
		item := s.History.Add(source, *data)
		res.Item = &item
	}

	log.Info().
		Str("source", string(source)).
		Int("fields", len(data.ParsedFields)).
		Bool("checksum_valid", res.ChecksumValid).
		Strs("unknown_tags", res.UnknownTags).
		Msg("payload decoded")
	return res, nil
}

// Encode builds the payload without rendering it. Each call counts as one
// generation.
func (s *Service) Encode(in protocol.GeneratorInput) (string, error) {
	payload, err := protocol.Encode(in)
	if err != nil {
		observability.RecordGeneration(outcomeOf(err))
		return "", err
	}
	observability.RecordGeneration(observability.OutcomeOK)
	return payload, nil
}

// Generate encodes in and renders the result. Validation failures are
// returned as *protocol.ValidationError; renderer failures as
// *GenerationError.
func (s *Service) Generate(ctx context.Context, in protocol.GeneratorInput) (GenerationResult, error) {
	payload, err := protocol.Encode(in)
	if err != nil {
		observability.RecordGeneration(outcomeOf(err))
		return GenerationResult{}, err
	}
	if s.Renderer == nil {
		observability.RecordGeneration(observability.OutcomeError)
		return GenerationResult{}, &GenerationError{Err: errors.New("no renderer configured")}
	}

	start := time.Now()
	img, err := s.Renderer.Render(ctx, payload)
	observability.RecordRender(time.Since(start))
	if err != nil {
		observability.RecordGeneration(observability.OutcomeError)
		log.Error().Err(err).Msg("qr render failed")
		return GenerationResult{}, &GenerationError{Err: err}
	}

	observability.RecordGeneration(observability.OutcomeOK)
	log.Info().Int("bytes", len(payload)).Int("image_bytes", len(img.Data)).Msg("payload generated")
	return GenerationResult{QRString: payload, Image: img}, nil
}

func unknownTags(data *protocol.Data) []string {
	var tags []string
	for _, f := range data.ParsedFields {
		if !schema.Known(f.Tag) {
			tags = append(tags, f.Tag)
		}
	}
	return tags
}

func outcomeOf(err error) string {
	if errors.Is(err, protocol.ErrValidation) {
		return observability.OutcomeInvalid
	}
	return observability.OutcomeError
}
