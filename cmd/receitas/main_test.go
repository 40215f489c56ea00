package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receitas/backend/internal/model"
)

const pennesJSON = `{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strCategory":"Vegetarian","strArea":"Italian",
"strInstructions":"Bring a large pot of water to a boil.\r\nAdd the penne.","strTags":"Pasta,Curry",
"strIngredient1":"penne rigate","strMeasure1":"1 pound","strIngredient2":"olive oil","strMeasure2":"1/4 cup"}]}`

// setupCLITestEnv points the CLI at fake upstreams and a temporary sqlite database.
func setupCLITestEnv(t *testing.T) {
	t.Helper()

	mealdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/lookup.php" && r.URL.Query().Get("i") == "52771",
			r.URL.Path == "/search.php", r.URL.Path == "/random.php":
			fmt.Fprint(w, pennesJSON)
		case r.URL.Path == "/categories.php":
			fmt.Fprint(w, `{"categories":[{"idCategory":"3","strCategory":"Dessert"}]}`)
		default:
			fmt.Fprint(w, `{"meals":null}`)
		}
	}))
	t.Cleanup(mealdb.Close)

	translator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		target := strings.TrimPrefix(q.Get("langpair"), "en|")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]string{"translatedText": strings.ToUpper(target) + ": " + q.Get("q")},
			"responseStatus": "200",
		})
	}))
	t.Cleanup(translator.Close)

	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("MEALDB_BASE_URL", mealdb.URL)
	t.Setenv("TRANSLATE_URL", translator.URL)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("S3_BUCKET_NAME", "")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearchTable(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "search", "penne")
	require.NoError(t, err)
	assert.Contains(t, out, "Spicy Arrabiata Penne")
	assert.Contains(t, out, "52771")
}

func TestSearchJSON(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "--json", "search", "penne")
	require.NoError(t, err)
	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "olive oil", recipes[0].Ingredients[1].Name)
}

func TestIngredientRequiresText(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, "ingredient", " ")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Dessert")
}

func TestShowTranslates(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "show", "52771", "--locale", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "ES: penne rigate")
	assert.Contains(t, out, "1. ES: Bring a large pot of water to a boil.\n2. ES: Add the penne.")

	_, _, err = runCLI(t, "show", "1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, _, err = runCLI(t, "show", "52771", "--locale", "ja")
	assert.ErrorIs(t, err, model.ErrUnsupportedLocale)
}

func TestLocalePersists(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "pt\n", out)

	_, _, err = runCLI(t, "locale", "set", "en-GB")
	require.NoError(t, err)

	out, _, err = runCLI(t, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "en\n", out)

	out, _, err = runCLI(t, "show", "52771")
	require.NoError(t, err)
	assert.Contains(t, out, "Bring a large pot of water to a boil.\r\nAdd the penne.", "source locale is shown untranslated")
}

func TestFavoritesLifecycle(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet")

	_, _, err = runCLI(t, "favorites", "add", "52771")
	require.NoError(t, err)

	out, _, err = runCLI(t, "favorites", "check", "52771")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, _, err = runCLI(t, "--json", "favorites", "list")
	require.NoError(t, err)
	var list []model.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)

	_, _, err = runCLI(t, "favorites", "remove", "52771")
	require.NoError(t, err)
	out, _, err = runCLI(t, "favorites", "check", "52771")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, _, err = runCLI(t, "favorites", "add", "0")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestExportToFile(t *testing.T) {
	setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "penne.md")

	out, _, err := runCLI(t, "export", "52771", "--locale", "pt", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Spicy Arrabiata Penne")
	assert.Contains(t, string(doc), "## Modo de preparo")
}
