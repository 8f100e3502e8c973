package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-jobs-scryper/pkg/logger"
)

const feedPayload = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Acme Careers</title>
    <link>https://careers.acme.example</link>
    <item>
      <title>Platform Engineer</title>
      <link>https://careers.acme.example/jobs/42</link>
      <guid>acme-42</guid>
      <category>Engineering</category>
      <description>&lt;p&gt;Run the &lt;b&gt;platform&lt;/b&gt;.&lt;/p&gt;</description>
      <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Product Manager</title>
      <link>https://careers.acme.example/jobs/43</link>
    </item>
  </channel>
</rss>`

func TestRSSSource_FetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	src := NewRSSSource([]string{server.URL}, logger.NewNop())
	records, err := src.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "acme-42", first.ID)
	assert.Equal(t, "Platform Engineer", first.Title)
	assert.Equal(t, "https://careers.acme.example/jobs/42", first.ApplyURL)
	assert.Equal(t, "Engineering", first.Profession)
	assert.Equal(t, "Run the platform.", first.Description)
	assert.False(t, first.PostedAt.IsZero())
	assert.Equal(t, "Acme Careers", first.Location)

	second := records[1]
	assert.Equal(t, "https://careers.acme.example/jobs/43", second.ID, "link is the fallback ID")
	assert.True(t, second.PostedAt.IsZero())
}

func TestRSSSource_NoPagination(t *testing.T) {
	src := NewRSSSource([]string{"https://unused.example/feed"}, logger.NewNop())
	records, err := src.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRSSSource_FeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewRSSSource([]string{server.URL}, logger.NewNop())
	_, err := src.FetchPage(context.Background(), 1)
	assert.Error(t, err)
}
