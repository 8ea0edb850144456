// Package pipeline runs one notification: extract links, enrich them,
// compose the message and deliver it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/CosmoTheDev/prmedia/internal/compose"
	"github.com/CosmoTheDev/prmedia/internal/links"
	"github.com/CosmoTheDev/prmedia/models"
)

// Resolver maps a SoundCloud URL to a universal link. Failures are reported
// as an unresolved result, never as an error.
type Resolver interface {
	Resolve(ctx context.Context, trackURL string) models.UniversalLink
}

// MediaLookup finds NASA media metadata. The bool is false when there is
// nothing to show.
type MediaLookup interface {
	Lookup(ctx context.Context, mediaID string) (models.MediaCard, bool)
}

// Sender delivers a composed document.
type Sender interface {
	Name() string
	Send(ctx context.Context, doc compose.Document) error
}

// Options tune a run.
type Options struct {
	// SecretConfigured selects the masked snippet variant.
	SecretConfigured bool
	// Legacy renders the SoundCloud-only text message and skips the NASA lookup.
	Legacy bool
}

// Pipeline wires the enrichers and the delivery channel together.
type Pipeline struct {
	resolver Resolver
	media    MediaLookup
	sender   Sender
}

// New returns a Pipeline.
func New(resolver Resolver, media MediaLookup, sender Sender) *Pipeline {
	return &Pipeline{resolver: resolver, media: media, sender: sender}
}

// Build runs every step except delivery.
func (p *Pipeline) Build(ctx context.Context, pr models.PullRequest, opts Options) compose.Document {
	found := links.ExtractFrom(pr)
	if opts.Legacy {
		found.Nasa, found.YouTube = nil, nil
	}
	slog.Debug("pipeline: links detected",
		"soundcloud", found.SoundCloud != nil,
		"nasa", found.Nasa != nil,
		"youtube", found.YouTube != nil,
	)

	in := compose.Input{PR: pr, Links: found, SecretConfigured: opts.SecretConfigured}
	p.enrich(ctx, found, &in)

	if opts.Legacy {
		return compose.Legacy(in)
	}
	return compose.Compose(in)
}

// Run builds the document and sends it once.
func (p *Pipeline) Run(ctx context.Context, pr models.PullRequest, opts Options) (compose.Document, error) {
	doc := p.Build(ctx, pr, opts)
	if err := p.sender.Send(ctx, doc); err != nil {
		return doc, fmt.Errorf("delivering to %s: %w", p.sender.Name(), err)
	}
	return doc, nil
}

// enrich issues the SoundCloud and NASA lookups concurrently. Each goroutine
// writes a distinct field of in and always returns nil.
func (p *Pipeline) enrich(ctx context.Context, found models.DetectedLinks, in *compose.Input) {
	g, gctx := errgroup.WithContext(ctx)

	if sc := found.SoundCloud; sc != nil && p.resolver != nil {
		g.Go(func() error {
			res := p.resolver.Resolve(gctx, sc.URL)
			in.SoundCloud = &res
			return nil
		})
	}

	if nasa := found.Nasa; nasa != nil && p.media != nil {
		if !nasa.HasID() {
			slog.Info("pipeline: NASA link has no media id, skipping lookup", "url", nasa.URL)
		} else {
			g.Go(func() error {
				if card, ok := p.media.Lookup(gctx, nasa.ID); ok {
					in.Nasa = &card
				}
				return nil
			})
		}
	}

	_ = g.Wait()
}
