package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/translate"
)

// DetailAssembler produces the fully resolved recipe shown in the detail view,
// translated into the requested locale.
type DetailAssembler struct {
	source     RecipeSource
	translator translate.Translator
	log        *slog.Logger
}

// NewDetailAssembler creates an assembler.
func NewDetailAssembler(source RecipeSource, translator translate.Translator, logger *slog.Logger) *DetailAssembler {
	return &DetailAssembler{
		source:     source,
		translator: translator,
		log:        logger,
	}
}

// AssembleDetail fetches recipe id and translates its category, area,
// ingredient slots and instruction paragraphs into locale. It returns nil only
// when the recipe cannot be fetched; individual translation failures keep the
// original text of that field.
func (a *DetailAssembler) AssembleDetail(ctx context.Context, id string, locale model.Locale) *model.Recipe {
	recipe := a.source.LookupRecipe(ctx, id)
	if recipe == nil {
		return nil
	}
	if !locale.NeedsTranslation() {
		return recipe
	}

	plan := planTranslation(recipe)
	results := make([]string, len(plan.texts))

	var g errgroup.Group
	for i, text := range plan.texts {
		g.Go(func() error {
			results[i] = a.translator.Translate(ctx, text, locale)
			return nil
		})
	}
	_ = g.Wait()

	a.log.Debug("recipe translated", "recipe_id", id, "locale", locale, "fields", len(plan.texts))

	translated := plan.apply(*recipe, results)
	return &translated
}

// Task layout: category, area, then ingredient/measure pairs at stride 2,
// then one task per instruction paragraph.
const (
	categoryTask   = 0
	areaTask       = 1
	ingredientBase = 2
)

type translationPlan struct {
	texts          []string
	slots          []int
	paragraphBase  int
	paragraphCount int
}

func planTranslation(r *model.Recipe) translationPlan {
	p := translationPlan{texts: []string{r.Category, r.Area}}
	for _, s := range r.PresentIngredients() {
		p.slots = append(p.slots, s.Slot)
		p.texts = append(p.texts, s.Name, s.Measure)
	}
	paragraphs := SplitInstructions(r.Instructions)
	p.paragraphBase = len(p.texts)
	p.paragraphCount = len(paragraphs)
	p.texts = append(p.texts, paragraphs...)
	return p
}

// apply writes results back onto a copy of r. Slot k of the plan always maps
// to ingredient index p.slots[k].
func (p translationPlan) apply(r model.Recipe, results []string) model.Recipe {
	r.Category = results[categoryTask]
	r.Area = results[areaTask]
	for k, slot := range p.slots {
		off := ingredientBase + 2*k
		r.Ingredients[slot] = model.Ingredient{Name: results[off], Measure: results[off+1]}
	}
	if p.paragraphCount > 0 {
		r.Instructions = NumberParagraphs(results[p.paragraphBase : p.paragraphBase+p.paragraphCount])
	}
	return r
}

var (
	lineBreak     = regexp.MustCompile(`\r?\n`)
	ordinalPrefix = regexp.MustCompile(`^(?:(?i:step)\s*\d+\s*[:.)\-]?\s*|\d+\s*[.)]\s+)`)
)

// SplitInstructions splits free-text instructions into paragraphs with their
// leading ordinal ("1. ", "2) ", "STEP 3") removed. Blank paragraphs are dropped.
func SplitInstructions(instructions string) []string {
	var out []string
	for _, line := range lineBreak.Split(instructions, -1) {
		if p := stripOrdinal(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NumberParagraphs joins paragraphs one per line with fresh "n. " prefixes,
// replacing an ordinal the translator may have added back.
func NumberParagraphs(paragraphs []string) string {
	var b strings.Builder
	n := 0
	for _, p := range paragraphs {
		if p = stripOrdinal(p); p == "" {
			continue
		}
		if n > 0 {
			b.WriteByte('\n')
		}
		n++
		fmt.Fprintf(&b, "%d. %s", n, p)
	}
	return b.String()
}

// stripOrdinal removes one leading ordinal. Anything after it is content,
// even when it starts with a number.
func stripOrdinal(s string) string {
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(strings.TrimSpace(s), ""))
}
