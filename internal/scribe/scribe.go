// Package scribe asks Gemini to write NPC dialogue for a content file.
package scribe

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/satchel/internal/item"
	"github.com/tatianab/satchel/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/npc_dialogue.txt
var npcDialoguePrompt string

var npcDialogueTmpl = template.Must(template.New("npc_dialogue").Parse(npcDialoguePrompt))

const maxLines = 6

// Lines is a generated set of balloon lines for one NPC.
type Lines struct {
	Request   []string `yaml:"request"`
	Fulfilled []string `yaml:"fulfilled"`
}

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = "You write short speech-balloon lines for characters in a cozy 2D game. Reply with YAML only."

// Scribe holds one Gemini client configured for dialogue writing.
type Scribe struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// New connects to Gemini with apiKey and prepares modelName for dialogue
// requests. An empty modelName selects DefaultModel.
func New(ctx context.Context, apiKey, modelName string) (*Scribe, error) {
	if apiKey == "" {
		return nil, errors.New("scribe: missing Gemini API key")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("scribe: creating Gemini client: %w", err)
	}

	m := client.GenerativeModel(modelName)
	m.SetTemperature(0.9)
	m.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	return &Scribe{client: client, model: m, modelName: modelName}, nil
}

// ModelName reports which model the scribe asks.
func (s *Scribe) ModelName() string { return s.modelName }

// Close releases the client connection.
func (s *Scribe) Close() error {
	return s.client.Close()
}

type promptRequirement struct {
	Name     string
	Quantity int
}

type promptData struct {
	Title      string
	Name       string
	Request    []string
	Requires   []promptRequirement
	Activate   []string
	Deactivate []string
}

// Prompt renders the dialogue prompt for npc. Item keys are shown by their
// catalog names when cat knows them.
func Prompt(title string, npc models.NPCSpec, cat *item.Catalog) (string, error) {
	data := promptData{
		Title:      title,
		Name:       npc.Name,
		Request:    npc.Request,
		Activate:   npc.Activate,
		Deactivate: npc.Deactivate,
	}
	for _, r := range npc.Requires {
		name := r.Item
		if cat != nil {
			if def, ok := cat.Lookup(r.Item); ok {
				name = def.Name()
			}
		}
		data.Requires = append(data.Requires, promptRequirement{Name: name, Quantity: r.Quantity})
	}

	var buf bytes.Buffer
	if err := npcDialogueTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DialogueFor asks the model for new lines for npc.
func (s *Scribe) DialogueFor(ctx context.Context, title string, npc models.NPCSpec, cat *item.Catalog) (Lines, error) {
	prompt, err := Prompt(title, npc, cat)
	if err != nil {
		return Lines{}, err
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Lines{}, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Lines{}, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return Lines{}, fmt.Errorf("unexpected response type from Gemini")
	}

	return ParseLines(string(text), len(npc.Requires) > 0)
}

func cleanYAML(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```yaml")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseLines reads a model reply. Blank lines are dropped and each set is
// capped. A gated NPC must get at least one fulfilled line.
func ParseLines(reply string, gated bool) (Lines, error) {
	clean := cleanYAML(reply)
	var l Lines
	if err := yaml.Unmarshal([]byte(clean), &l); err != nil {
		return Lines{}, fmt.Errorf("failed to parse dialogue YAML: %v\nOutput was: %s", err, clean)
	}
	l.Request = tidy(l.Request)
	l.Fulfilled = tidy(l.Fulfilled)
	if len(l.Request) == 0 {
		return Lines{}, errors.New("reply has no request lines")
	}
	if gated && len(l.Fulfilled) == 0 {
		return Lines{}, errors.New("reply has no fulfilled lines")
	}
	if !gated {
		l.Fulfilled = nil
	}
	return l, nil
}

func tidy(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxLines {
			break
		}
	}
	return out
}

// Apply writes l into the named NPC of c.
func Apply(c *models.Content, name string, l Lines) error {
	npc, ok := c.NPC(name)
	if !ok {
		return fmt.Errorf("no npc named %q", name)
	}
	npc.Request = l.Request
	if len(npc.Requires) > 0 {
		npc.Fulfilled = l.Fulfilled
	}
	return nil
}
