package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobDescriptionFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<header>Acme Careers</header>
			<main>
				<h1>Data Analyst Intern</h1>
				<p>Acme Corp is hiring a summer intern.</p>
				<ul><li>Build weekly SQL reports</li><li>Maintain dashboards</li></ul>
				<div class="eeo-statement">Acme is an equal opportunity employer.</div>
			</main>
		</body></html>`))
	}))
	defer server.Close()

	text, err := JobDescriptionFromURL(context.Background(), server.URL, JobURLOptions{})
	require.NoError(t, err)

	assert.Contains(t, text, "Data Analyst Intern")
	assert.Contains(t, text, "Build weekly SQL reports")
	assert.NotContains(t, text, "Acme Careers")
	assert.NotContains(t, text, "equal opportunity")
}

func TestJobDescriptionFromURL_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>render()</script></body></html>`))
	}))
	defer server.Close()

	_, err := JobDescriptionFromURL(context.Background(), server.URL, JobURLOptions{})
	assert.ErrorIs(t, err, ErrEmptyPosting)
}

func TestJobDescriptionFromURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := JobDescriptionFromURL(context.Background(), server.URL, JobURLOptions{})
	assert.Error(t, err)
}
