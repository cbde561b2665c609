// Package gemini implements a remote named-entity tagger on Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tasanda/ceu"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for tagging.
const DefaultModel = "gemini-2.5-flash"

// maxPromptRunes bounds the document text sent to the model.
const maxPromptRunes = 20000

// labels are the entity labels the model is asked to produce.
var labels = []string{
	ceu.TagDate, ceu.TagMoney, ceu.TagOrg, ceu.TagGPE,
	ceu.TagLoc, ceu.TagFac, ceu.TagPerson, ceu.TagTime,
}

var _ ceu.EntityTagger = (*Tagger)(nil)

// Tagger implements ceu.EntityTagger using Google Gemini.
type Tagger struct {
	client *genai.Client
	model  string
}

// NewTagger creates a new Tagger. An empty model selects DefaultModel.
func NewTagger(client *genai.Client, model string) *Tagger {
	if model == "" {
		model = DefaultModel
	}
	return &Tagger{client: client, model: model}
}

// Tag asks the model for the named entities in text.
func (t *Tagger) Tag(ctx context.Context, text string) ([]ceu.TaggedEntity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if t.client == nil {
		return nil, ceu.Errorf(ceu.EINVALID, "gemini client required")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildTagPrompt(text)}},
		}},
		BuildTagConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ceu.Errorf(ceu.EINTERNAL, "gemini returned nil result")
	}

	return ParseEntities(result.Text(), text)
}

// BuildTagConfig returns the GenerateContentConfig for tagging calls.
// The reply is constrained to a JSON array of {text, label} objects.
func BuildTagConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a named entity recognizer using the OntoNotes label set. " +
					"Copy each entity exactly as it appears in the document. " +
					"Only use these labels: " + strings.Join(labels, ", ") + ".",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":  {Type: genai.TypeString},
					"label": {Type: genai.TypeString, Enum: labels},
				},
				Required: []string{"text", "label"},
			},
		},
	}
}

// BuildTagPrompt builds the user prompt for a document.
// Long documents are truncated.
func BuildTagPrompt(text string) string {
	if utf8.RuneCountInString(text) > maxPromptRunes {
		text = string([]rune(text)[:maxPromptRunes])
	}
	var sb strings.Builder
	sb.WriteString("List the named entities in this course page, in order of appearance.\n\n")
	sb.WriteString("<document>\n")
	sb.WriteString(text)
	sb.WriteString("\n</document>")
	return sb.String()
}

type taggedJSON struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// ParseEntities decodes a model reply and locates each entity in text.
// Entities are searched for in order, each after the previous match.
// Entities with unknown labels or that do not occur in text are dropped.
func ParseEntities(reply, text string) ([]ceu.TaggedEntity, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var raw []taggedJSON
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("decoding gemini entities: %w", err)
	}

	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}

	entities := []ceu.TaggedEntity{}
	cursor := 0
	for _, r := range raw {
		label := strings.ToUpper(strings.TrimSpace(r.Label))
		name := strings.TrimSpace(r.Text)
		if !known[label] || name == "" {
			continue
		}

		start := strings.Index(text[cursor:], name)
		if start == -1 {
			// Out-of-order entity: search from the beginning.
			start = strings.Index(text, name)
			if start == -1 {
				continue
			}
		} else {
			start += cursor
		}
		end := start + len(name)
		if end > cursor {
			cursor = end
		}

		runeStart := utf8.RuneCountInString(text[:start])
		entities = append(entities, ceu.TaggedEntity{
			Text:  name,
			Label: label,
			Span:  ceu.Span{Start: runeStart, End: runeStart + utf8.RuneCountInString(name)},
		})
	}
	return entities, nil
}
