package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pageza/receitas/backend/internal/model"
)

// MarkdownContentType is the content type of exported documents.
const MarkdownContentType = "text/markdown; charset=utf-8"

// ExportResult describes an exported recipe document. When the document was
// uploaded, URL is a time-limited download link and Body is not serialized.
type ExportResult struct {
	RecipeID    string       `json:"recipe_id"`
	Locale      model.Locale `json:"locale"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	Key         string       `json:"key,omitempty"`
	URL         string       `json:"url,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Body        []byte       `json:"-"`
}

// Exporter renders assembled recipes as Markdown documents and optionally
// uploads them to an object store.
type Exporter struct {
	assembler *DetailAssembler
	store     ObjectStore
	ttl       time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// NewExporter creates an exporter. store may be nil, in which case documents
// are only returned inline.
func NewExporter(assembler *DetailAssembler, store ObjectStore, ttl time.Duration, logger *slog.Logger) *Exporter {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Exporter{
		assembler: assembler,
		store:     store,
		ttl:       ttl,
		log:       logger,
		now:       time.Now,
	}
}

// Export assembles recipe id in locale and renders it.
func (e *Exporter) Export(ctx context.Context, id string, locale model.Locale) (*ExportResult, error) {
	recipe := e.assembler.AssembleDetail(ctx, id, locale)
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", id, model.ErrNotFound)
	}

	res := &ExportResult{
		RecipeID:    recipe.ID,
		Locale:      locale,
		Filename:    slugify(recipe.Name) + ".md",
		ContentType: MarkdownContentType,
		Body:        RenderMarkdown(recipe, locale),
	}
	if e.store == nil {
		return res, nil
	}

	key := fmt.Sprintf("exports/%s/%s.md", recipe.ID, uuid.NewString())
	if err := e.store.Put(ctx, key, res.Body, res.ContentType); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	link, err := e.store.PresignGet(ctx, key, e.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}
	expires := e.now().Add(e.ttl).UTC()
	res.Key = key
	res.URL = link
	res.ExpiresAt = &expires

	e.log.Info("recipe exported", "recipe_id", recipe.ID, "locale", locale, "key", key)
	return res, nil
}

type exportHeadings struct {
	Ingredients  string
	Ingredient   string
	Measure      string
	Instructions string
	Video        string
}

var headingsByLocale = map[model.Locale]exportHeadings{
	model.LocalePT: {"Ingredientes", "Ingrediente", "Medida", "Modo de preparo", "Vídeo"},
	model.LocaleEN: {"Ingredients", "Ingredient", "Measure", "Instructions", "Video"},
	model.LocaleES: {"Ingredientes", "Ingrediente", "Medida", "Instrucciones", "Vídeo"},
}

// RenderMarkdown renders a recipe document.
func RenderMarkdown(r *model.Recipe, locale model.Locale) []byte {
	h, ok := headingsByLocale[locale]
	if !ok {
		h = headingsByLocale[model.SourceLocale]
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", r.Name)

	var meta []string
	for _, s := range []string{r.Area, r.Category} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(meta, " · "))
	}
	if tags := r.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "`%s`\n\n", strings.Join(tags, "` `"))
	}
	if r.YouTube != "" {
		fmt.Fprintf(&b, "[%s](%s)\n\n", h.Video, r.YouTube)
	}

	if slots := r.PresentIngredients(); len(slots) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", h.Ingredients)
		tw := table.NewWriter()
		tw.AppendHeader(table.Row{h.Ingredient, h.Measure})
		for _, s := range slots {
			tw.AppendRow(table.Row{s.Name, s.Measure})
		}
		b.WriteString(tw.RenderMarkdown())
		b.WriteString("\n\n")
	}

	if paragraphs := SplitInstructions(r.Instructions); len(paragraphs) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", h.Instructions)
		b.WriteString(NumberParagraphs(paragraphs))
		b.WriteString("\n")
	}
	return b.Bytes()
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "recipe"
	}
	return slug
}
