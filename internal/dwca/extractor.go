package dwca

import (
	"context"
	"errors"
	"io"

	"github.com/handiism/birdsound-dl/internal/model"
)

// RecordSource yields occurrence records in dataset order and returns
// io.EOF after the last one. *Reader and *Dataset implement it.
type RecordSource interface {
	Next() (model.OccurrenceRecord, error)
}

// MetadataResolver resolves a metadata pointer to an audio URL.
type MetadataResolver interface {
	Resolve(ctx context.Context, pointerURL string) (string, error)
}

// Extractor turns occurrence records into audio candidates.
//
// Example usage:
//
//	ex := NewExtractor(NewResolver(client), "scientificName", []string{"references", "associatedMedia"})
//	ex.OnResolveError = func(rec model.OccurrenceRecord, ref string, err error) {
//	    log.Printf("row %d: %v", rec.Row, err)
//	}
//	candidates, err := ex.Extract(ctx, dataset)
type Extractor struct {
	resolver        MetadataResolver
	taxonField      string
	referenceFields []string

	// OnResolveError is called when a metadata pointer yields no URL.
	// The reference is dropped either way.
	OnResolveError func(rec model.OccurrenceRecord, ref string, err error)

	// OnRecord is called after each record with the number of candidates
	// it produced.
	OnRecord func(rec model.OccurrenceRecord, produced int)
}

// NewExtractor creates an Extractor reading the taxon from taxonField and
// references from referenceFields, in the given order.
func NewExtractor(resolver MetadataResolver, taxonField string, referenceFields []string) *Extractor {
	return &Extractor{
		resolver:        resolver,
		taxonField:      taxonField,
		referenceFields: append([]string(nil), referenceFields...),
	}
}

// Extract reads src to the end and returns the candidates in row order,
// then field order within a row.
//
// Records without a taxon are skipped. Resolution failures are reported
// and dropped. The only errors returned are those of src (which match
// model.ErrInputUnreadable for a Reader) and context cancellation.
func (e *Extractor) Extract(ctx context.Context, src RecordSource) ([]model.AudioCandidate, error) {
	var out []model.AudioCandidate
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		before := len(out)
		out = e.appendRecord(ctx, out, rec)
		if e.OnRecord != nil {
			e.OnRecord(rec, len(out)-before)
		}
	}
}

// ExtractRecord returns the candidates of a single record.
func (e *Extractor) ExtractRecord(ctx context.Context, rec model.OccurrenceRecord) []model.AudioCandidate {
	return e.appendRecord(ctx, nil, rec)
}

func (e *Extractor) appendRecord(ctx context.Context, out []model.AudioCandidate, rec model.OccurrenceRecord) []model.AudioCandidate {
	taxon, ok := rec.Get(e.taxonField)
	if !ok {
		return out
	}

	for _, field := range e.referenceFields {
		ref, ok := rec.Get(field)
		if !ok {
			continue
		}

		if Classify(ref) == DirectAudio {
			out = append(out, model.AudioCandidate{URL: ref, Taxon: taxon})
			continue
		}

		audioURL, err := e.resolver.Resolve(ctx, ref)
		if err == nil && audioURL == "" {
			err = model.ErrNoMedia
		}
		if err != nil {
			if e.OnResolveError != nil {
				e.OnResolveError(rec, ref, err)
			}
			continue
		}
		out = append(out, model.AudioCandidate{URL: audioURL, Taxon: taxon})
	}
	return out
}
