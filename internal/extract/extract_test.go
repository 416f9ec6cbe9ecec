package extract_test

import (
	"testing"

	"news_builder/internal/extract"

	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Google News</title>
		<item>
			<title><![CDATA[ Rescate en la playa ]]></title>
			<link>https://example.com/a</link>
			<pubDate>Wed, 03 May 2023 15:04:05 GMT</pubDate>
			<source url="https://diario.es">Diario Sur</source>
		</item>
		<ITEM>
			<title>Travesía a nado</title>
			<link>https://example.com/b</link>
			<pubDate>Wed, 03 May 2023 16:04:05 GMT</pubDate>
		</ITEM>
	</channel>
</rss>`

func TestField(t *testing.T) {
	testCases := []struct {
		name string
		text string
		tag  string
		want string
	}{
		{name: "plain", text: `<title>Hello</title>`, tag: "title", want: "Hello"},
		{name: "cdata", text: `<title><![CDATA[Hello & bye]]></title>`, tag: "title", want: "Hello & bye"},
		{name: "whitespace", text: "<title>\n  Hello \t</title>", tag: "title", want: "Hello"},
		{name: "attributes", text: `<source url="https://x">Diario</source>`, tag: "source", want: "Diario"},
		{name: "case insensitive", text: `<PUBDATE>Mon</PUBDATE>`, tag: "pubDate", want: "Mon"},
		{name: "first occurrence", text: `<link>a</link><link>b</link>`, tag: "link", want: "a"},
		{name: "multiline", text: "<title>one\ntwo</title>", tag: "title", want: "one\ntwo"},
		{name: "absent", text: `<title>Hello</title>`, tag: "link", want: ""},
		{name: "unclosed", text: `<title>Hello`, tag: "title", want: ""},
		{name: "empty text", text: "", tag: "title", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, extract.Field(tc.text, tc.tag))
		})
	}
}

func TestItemBlocks(t *testing.T) {
	blocks := extract.ItemBlocks(sampleFeed)
	require.Len(t, blocks, 2)
	require.Contains(t, blocks[0], "https://example.com/a")
	require.Contains(t, blocks[1], "https://example.com/b")

	require.Empty(t, extract.ItemBlocks("<html><body>consent</body></html>"))
	require.Empty(t, extract.ItemBlocks(""))
	require.Empty(t, extract.ItemBlocks(`<item attr="x">no match with attributes</item>`))
}

func TestPatternEntries(t *testing.T) {
	entries := extract.Pattern{}.Entries(sampleFeed)
	require.Len(t, entries, 2)

	require.Equal(t, "Rescate en la playa", entries[0].Field("title"))
	require.Equal(t, "https://example.com/a", entries[0].Field("link"))
	require.Equal(t, "Wed, 03 May 2023 15:04:05 GMT", entries[0].Field("pubDate"))
	require.Equal(t, "Diario Sur", entries[0].Field("source"))
	require.Equal(t, "", entries[1].Field("source"))
}

func TestRSSEntries(t *testing.T) {
	entries := extract.RSS{}.Entries(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Feed</title>
		<item>
			<title><![CDATA[Rescate en la playa]]></title>
			<link>https://example.com/a</link>
			<pubDate>Wed, 03 May 2023 15:04:05 GMT</pubDate>
			<source url="https://diario.es">Diario Sur</source>
		</item>
		<item>
			<title>Sin fuente</title>
			<link>https://example.com/b</link>
		</item>
	</channel>
</rss>`)
	require.Len(t, entries, 2)

	require.Equal(t, "Rescate en la playa", entries[0].Field("title"))
	require.Equal(t, "https://example.com/a", entries[0].Field("link"))
	require.Equal(t, "Wed, 03 May 2023 15:04:05 GMT", entries[0].Field("pubDate"))
	require.Equal(t, "Diario Sur", entries[0].Field("source"))
	require.Equal(t, "", entries[1].Field("source"))
	require.Equal(t, "", entries[1].Field("pubDate"))
}

func TestRSSEntries_NotAFeed(t *testing.T) {
	require.Empty(t, extract.RSS{}.Entries("<html><body>consent</body></html>"))
	require.Empty(t, extract.RSS{}.Entries("Title: mirrored text"))
}

func TestNew(t *testing.T) {
	ex, err := extract.New("pattern")
	require.NoError(t, err)
	require.IsType(t, extract.Pattern{}, ex)

	ex, err = extract.New("rss")
	require.NoError(t, err)
	require.IsType(t, extract.RSS{}, ex)

	_, err = extract.New("xpath")
	require.Error(t, err)
}
