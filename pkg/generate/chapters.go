package generate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Section is one unit of input to chapter generation.
type Section struct {
	// Number orders the chapter within the book.
	Number int

	// Title is the chapter title; empty derives "Chapter N".
	Title string

	// Prompt is the generation prompt for this chapter.
	Prompt string

	// Params are extra generation parameters merged into each call.
	Params map[string]any
}

// Chapter is one generated chapter.
type Chapter struct {
	Number  int
	Title   string
	Content []byte

	// Failed marks a placeholder produced after generation failed.
	Failed bool
}

// ChapterConfig holds chapter generation configuration.
type ChapterConfig struct {
	// MaxWorkers is the number of parallel generation workers.
	MaxWorkers int

	// Timeout bounds each chapter's generation call. Zero disables it.
	Timeout time.Duration
}

// DefaultChapterConfig returns safe defaults for chapter generation.
func DefaultChapterConfig() ChapterConfig {
	return ChapterConfig{
		MaxWorkers: 3,
		Timeout:    5 * time.Minute,
	}
}

// ChapterGenerator generates book chapters in parallel through a Producer.
// Wrap the producer in a CachedProducer to reuse results across runs.
type ChapterGenerator struct {
	producer Producer
	config   ChapterConfig
	logger   zerolog.Logger
}

// NewChapterGenerator creates a generator; zero config fields fall back to
// defaults.
func NewChapterGenerator(producer Producer, config ChapterConfig) (*ChapterGenerator, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer is required")
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultChapterConfig().MaxWorkers
	}
	return &ChapterGenerator{
		producer: producer,
		config:   config,
		logger:   log.With().Str("component", "chapter-generator").Logger(),
	}, nil
}

// GenerateChapters generates all sections using a bounded worker pool. A
// section whose generation fails yields a placeholder chapter instead of
// failing the whole batch. Results are ordered by chapter number.
func (g *ChapterGenerator) GenerateChapters(ctx context.Context, sections []Section) []Chapter {
	g.logger.Info().
		Int("sections", len(sections)).
		Int("workers", g.config.MaxWorkers).
		Msg("Starting parallel chapter generation")

	if len(sections) == 0 {
		return nil
	}

	queue := make(chan Section, len(sections))
	results := make(chan Chapter, len(sections))
	for _, s := range sections {
		queue <- s
	}
	close(queue)

	workers := g.config.MaxWorkers
	if workers > len(sections) {
		workers = len(sections)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for section := range queue {
				results <- g.generateOne(ctx, section)
			}
		}()
	}
	wg.Wait()
	close(results)

	chapters := make([]Chapter, 0, len(sections))
	for ch := range results {
		chapters = append(chapters, ch)
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})

	g.logger.Info().Int("chapters", len(chapters)).Msg("Chapter generation complete")
	return chapters
}

func (g *ChapterGenerator) generateOne(ctx context.Context, section Section) Chapter {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	params := map[string]any{"chapter": section.Number}
	for k, v := range section.Params {
		params[k] = v
	}

	content, err := g.producer.Generate(ctx, section.Prompt, params)
	if err != nil {
		g.logger.Error().
			Err(err).
			Int("chapter", section.Number).
			Msg("Chapter generation failed")
		return Chapter{
			Number:  section.Number,
			Title:   chapterTitle(section),
			Content: []byte("Error generating chapter content."),
			Failed:  true,
		}
	}

	g.logger.Debug().Int("chapter", section.Number).Msg("Chapter generated")
	return Chapter{
		Number:  section.Number,
		Title:   chapterTitle(section),
		Content: content,
	}
}

func chapterTitle(section Section) string {
	if section.Title != "" {
		return section.Title
	}
	return fmt.Sprintf("Chapter %d", section.Number)
}
