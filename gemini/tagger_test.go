package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/gemini"
	"google.golang.org/genai"
)

func TestTagger_Tag_ReturnsNothingForEmptyText(t *testing.T) {
	t.Parallel()

	tagger := gemini.NewTagger(nil, "") // nil client ok for this test

	entities, err := tagger.Tag(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestTagger_Tag_ReturnsErrorWithoutClient(t *testing.T) {
	t.Parallel()

	tagger := gemini.NewTagger(nil, "")

	_, err := tagger.Tag(context.Background(), "Ethics for Counselors")

	require.Error(t, err)
	assert.Equal(t, ceu.EINVALID, ceu.ErrorCode(err))
}

func TestBuildTagConfig_RequestsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildTagConfig()

	require.NotNil(t, config.SystemInstruction)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "PERSON")
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Type)
	assert.Contains(t, config.ResponseSchema.Items.Properties["label"].Enum, ceu.TagMoney)
	require.NotNil(t, config.Temperature)
	assert.Equal(t, float32(0), *config.Temperature)
}

func TestBuildTagPrompt(t *testing.T) {
	t.Parallel()

	t.Run("wraps the document", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildTagPrompt("Presented by Jane Doe")
		assert.Contains(t, prompt, "<document>\nPresented by Jane Doe\n</document>")
	})

	t.Run("truncates long documents", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildTagPrompt(strings.Repeat("é", 30000))
		assert.Less(t, strings.Count(prompt, "é"), 30000)
	})
}

func TestParseEntities(t *testing.T) {
	t.Parallel()

	text := "Presented by Jane Doe, PhD on March 5, 2025. Fee: $49. Jane Doe is approved by NBCC."

	t.Run("locates entities in order", func(t *testing.T) {
		t.Parallel()

		reply := `[
			{"text": "Jane Doe", "label": "PERSON"},
			{"text": "March 5, 2025", "label": "DATE"},
			{"text": "$49", "label": "MONEY"},
			{"text": "Jane Doe", "label": "PERSON"},
			{"text": "NBCC", "label": "org"}
		]`

		entities, err := gemini.ParseEntities(reply, text)

		require.NoError(t, err)
		require.Len(t, entities, 5)
		assert.Equal(t, ceu.TaggedEntity{Text: "Jane Doe", Label: ceu.TagPerson, Span: ceu.Span{Start: 13, End: 21}}, entities[0])
		assert.Equal(t, ceu.Span{Start: 30, End: 43}, entities[1].Span)
		assert.Equal(t, ceu.TagMoney, entities[2].Label)
		assert.Equal(t, ceu.Span{Start: 55, End: 63}, entities[3].Span, "second mention found after the first")
		assert.Equal(t, ceu.TagOrg, entities[4].Label)
	})

	t.Run("drops unknown labels and invented text", func(t *testing.T) {
		t.Parallel()

		reply := `[{"text": "Jane Doe", "label": "NORP"}, {"text": "John Smith", "label": "PERSON"}, {"text": "", "label": "DATE"}]`

		entities, err := gemini.ParseEntities(reply, text)

		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("accepts fenced JSON", func(t *testing.T) {
		t.Parallel()

		reply := "```json\n[{\"text\": \"NBCC\", \"label\": \"ORG\"}]\n```"

		entities, err := gemini.ParseEntities(reply, text)

		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "NBCC", entities[0].Text)
	})

	t.Run("counts spans in runes", func(t *testing.T) {
		t.Parallel()

		entities, err := gemini.ParseEntities(`[{"text": "Zoë Ruiz", "label": "PERSON"}]`, "Café with Zoë Ruiz")

		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, ceu.Span{Start: 10, End: 18}, entities[0].Span)
	})

	t.Run("returns error for malformed reply", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseEntities("not json", text)
		assert.Error(t, err)
	})
}
