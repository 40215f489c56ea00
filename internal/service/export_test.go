package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receitas/backend/internal/logging"
	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/testhelpers/mocks"
)

func TestRenderMarkdown(t *testing.T) {
	r := teriyaki()
	r.YouTube = "https://www.youtube.com/watch?v=4aZr5hZXP_s"

	doc := string(RenderMarkdown(r, model.LocalePT))

	assert.True(t, strings.HasPrefix(doc, "# Teriyaki Chicken Casserole\n\n"))
	assert.Contains(t, doc, "Japanese · Chicken")
	assert.Contains(t, doc, "`Meat` `Casserole`")
	assert.Contains(t, doc, "[Vídeo](https://www.youtube.com/watch?v=4aZr5hZXP_s)")
	assert.Contains(t, doc, "## Ingredientes")
	assert.Contains(t, doc, "| Ingrediente | Medida |")
	assert.Contains(t, doc, "| soy sauce | 3/4 cup |")
	assert.NotContains(t, doc, "stray")
	assert.Contains(t, doc, "## Modo de preparo\n\n1. Boil water.\n2. Add rice.\n")
}

func TestRenderMarkdownUnknownLocaleUsesEnglishHeadings(t *testing.T) {
	doc := string(RenderMarkdown(&model.Recipe{Name: "Toast", Instructions: "Toast bread."}, model.Locale("fr")))
	assert.Contains(t, doc, "## Instructions")
	assert.NotContains(t, doc, "## Ingredients", "no ingredient table without ingredients")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "teriyaki-chicken-casserole", slugify("Teriyaki Chicken Casserole"))
	assert.Equal(t, "pão-de-queijo", slugify("  Pão de Queijo! "))
	assert.Equal(t, "recipe", slugify("???"))
}

func TestExportInline(t *testing.T) {
	a := NewDetailAssembler(newSource(teriyaki()), &prefixTranslator{}, logging.NewNop())
	e := NewExporter(a, nil, 0, logging.NewNop())

	res, err := e.Export(context.Background(), "52772", model.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "teriyaki-chicken-casserole.md", res.Filename)
	assert.Equal(t, MarkdownContentType, res.ContentType)
	assert.Empty(t, res.URL)
	assert.Nil(t, res.ExpiresAt)
	assert.Contains(t, string(res.Body), "## Ingredients")
}

func TestExportNotFound(t *testing.T) {
	a := NewDetailAssembler(newSource(teriyaki()), &prefixTranslator{}, logging.NewNop())
	e := NewExporter(a, nil, 0, logging.NewNop())

	_, err := e.Export(context.Background(), "0", model.LocalePT)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestExportUploads(t *testing.T) {
	store := new(mocks.MockObjectStore)
	store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "exports/52772/") && strings.HasSuffix(key, ".md")
	}), mock.Anything, MarkdownContentType).Return(nil)
	store.On("PresignGet", mock.Anything, mock.Anything, 10*time.Minute).Return("https://bucket.example/signed", nil)

	a := NewDetailAssembler(newSource(teriyaki()), &prefixTranslator{}, logging.NewNop())
	e := NewExporter(a, store, 10*time.Minute, logging.NewNop())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	res, err := e.Export(context.Background(), "52772", model.LocaleES)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/signed", res.URL)
	require.NotNil(t, res.ExpiresAt)
	assert.Equal(t, fixed.Add(10*time.Minute), *res.ExpiresAt)
	assert.Contains(t, string(res.Body), "## Instrucciones")
	assert.Contains(t, string(res.Body), "[es] Boil water.")
	store.AssertExpectations(t)
}

func TestExportUploadFailure(t *testing.T) {
	store := new(mocks.MockObjectStore)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied"))

	a := NewDetailAssembler(newSource(teriyaki()), &prefixTranslator{}, logging.NewNop())
	e := NewExporter(a, store, 0, logging.NewNop())

	_, err := e.Export(context.Background(), "52772", model.LocaleEN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
}
