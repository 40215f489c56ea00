package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/receitas/backend/internal/logging"
	"github.com/pageza/receitas/backend/internal/model"
)

func newTranslator(t *testing.T, email string, h http.HandlerFunc) (*MyMemory, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewMyMemory(Options{Endpoint: srv.URL, Email: email, HTTPClient: srv.Client()}, logging.NewNop()), &calls
}

func TestTranslateSuccess(t *testing.T) {
	tr, _ := newTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Boil water.", r.URL.Query().Get("q"))
		assert.Equal(t, "en|es", r.URL.Query().Get("langpair"))
		assert.Empty(t, r.URL.Query().Get("de"))
		fmt.Fprint(w, `{"responseData":{"translatedText":"Hervir agua."},"responseStatus":200}`)
	})

	assert.Equal(t, "Hervir agua.", tr.Translate(context.Background(), "Boil water.", model.LocaleES))
}

func TestTranslateSendsEmail(t *testing.T) {
	tr, _ := newTranslator(t, "cook@example.com", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cook@example.com", r.URL.Query().Get("de"))
		fmt.Fprint(w, `{"responseData":{"translatedText":"Arroz"},"responseStatus":200}`)
	})
	assert.Equal(t, "Arroz", tr.Translate(context.Background(), "Rice", model.LocalePT))
}

func TestTranslateIdentityShortCircuit(t *testing.T) {
	tr, calls := newTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	for _, text := range []string{"Boil water.", "", "  spaced  "} {
		assert.Equal(t, text, tr.Translate(context.Background(), text, model.SourceLocale))
	}
	for _, l := range model.SupportedLocales() {
		assert.Equal(t, "", tr.Translate(context.Background(), "", l))
	}
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestTranslateFallsBackToOriginal(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"quota exceeded": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS"},"responseStatus":429}`)
		},
		"quoted error status": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"responseData":{"translatedText":"x"},"responseStatus":"403","responseDetails":"INVALID LANGUAGE PAIR"}`)
		},
		"empty translation": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"responseData":{"translatedText":""},"responseStatus":200}`)
		},
		"missing data": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"responseStatus":200}`)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `oops`)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			tr, calls := newTranslator(t, "", h)
			assert.Equal(t, "Add rice.", tr.Translate(context.Background(), "Add rice.", model.LocalePT))
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestTranslateAcceptsQuotedSuccessStatus(t *testing.T) {
	tr, _ := newTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseData":{"translatedText":"Sal"},"responseStatus":"200"}`)
	})
	assert.Equal(t, "Sal", tr.Translate(context.Background(), "Salt", model.LocaleES))
}

func TestTranslateTransportFailure(t *testing.T) {
	tr := NewMyMemory(Options{Endpoint: "http://127.0.0.1:1/get"}, logging.NewNop())
	assert.Equal(t, "Salt", tr.Translate(context.Background(), "Salt", model.LocaleES))
}
