package configs

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// InputPlaceholder marks where the user's message goes in the instructions template.
const InputPlaceholder = "{{input}}"

const defaultInstructions = `Ets un agent que dona suport i informació respecte la informació familiar com ara, aniversaris, llocs de naixement, parelles etcétera.

A la pregunta:
 {{input}}

Vas a buscar la informació a la tool Arbre Familiar. En la respuesta no des la referencia de donde has obtenido la información.
També pots buscar informació a la web i crear imatges.
A la resposta no indiquis la referència origen.
Respon sempre en català i intenta ser breu.`

type UserLocation struct {
	Type    string `json:"type" yaml:"type"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Tool is a hosted tool as the Responses API expects it. Only the fields
// relevant to Type are set.
type Tool struct {
	Type string `json:"type" yaml:"type"`

	// file_search
	VectorStoreIDs []string `json:"vector_store_ids,omitempty" yaml:"vector_store_ids,omitempty"`

	// web_search_preview
	SearchContextSize string        `json:"search_context_size,omitempty" yaml:"search_context_size,omitempty"`
	UserLocation      *UserLocation `json:"user_location,omitempty" yaml:"user_location,omitempty"`

	// image_generation
	Background    string `json:"background,omitempty" yaml:"background,omitempty"`
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
	Moderation    string `json:"moderation,omitempty" yaml:"moderation,omitempty"`
	OutputFormat  string `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	PartialImages *int   `json:"partial_images,omitempty" yaml:"partial_images,omitempty"`
	Quality       string `json:"quality,omitempty" yaml:"quality,omitempty"`
	Size          string `json:"size,omitempty" yaml:"size,omitempty"`
}

type Reasoning struct {
	Effort  string `json:"effort,omitempty" yaml:"effort,omitempty"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type ModelSettings struct {
	Store     *bool      `yaml:"store,omitempty"`
	Reasoning *Reasoning `yaml:"reasoning,omitempty"`
}

// TraceConfig names a run for external observability. Nothing here is interpreted locally.
type TraceConfig struct {
	WorkflowName string            `yaml:"workflow_name"`
	Metadata     map[string]string `yaml:"metadata"`
}

// AgentDefinition is built once at start-up and shared read-only by every request.
type AgentDefinition struct {
	Name                 string        `yaml:"name"`
	Model                string        `yaml:"model"`
	InstructionsTemplate string        `yaml:"instructions"`
	Tools                []Tool        `yaml:"tools"`
	ModelSettings        ModelSettings `yaml:"model_settings"`
	Trace                TraceConfig   `yaml:"trace"`
}

// Instructions renders the system prompt for one message.
func (d *AgentDefinition) Instructions(message string) string {
	return strings.ReplaceAll(d.InstructionsTemplate, InputPlaceholder, message)
}

// ToolTypes lists the configured tool types in order, for logging.
func (d *AgentDefinition) ToolTypes() []string {
	types := make([]string, 0, len(d.Tools))
	for _, t := range d.Tools {
		types = append(types, t.Type)
	}
	return types
}

func (d *AgentDefinition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("agent name is empty")
	}
	if strings.TrimSpace(d.Model) == "" {
		return fmt.Errorf("agent %q has no model", d.Name)
	}
	for i, t := range d.Tools {
		if t.Type == "" {
			return fmt.Errorf("agent %q tool %d has no type", d.Name, i)
		}
	}
	return nil
}

// DefaultAgentDefinition is the family-tree assistant: document search over
// the family vector store, web search localised to Spain and image generation.
func DefaultAgentDefinition() *AgentDefinition {
	store := true
	partialImages := 3
	return &AgentDefinition{
		Name:                 "Gestor familiar",
		Model:                "gpt-4o",
		InstructionsTemplate: defaultInstructions,
		Tools: []Tool{
			{
				Type:           "file_search",
				VectorStoreIDs: []string{"vs_6963e0d893648191981088fde3bb184f"},
			},
			{
				Type:              "web_search_preview",
				SearchContextSize: "medium",
				UserLocation:      &UserLocation{Type: "approximate", Country: "ES"},
			},
			{
				Type:          "image_generation",
				Background:    "auto",
				Model:         "gpt-image-1",
				Moderation:    "auto",
				OutputFormat:  "png",
				PartialImages: &partialImages,
				Quality:       "auto",
				Size:          "auto",
			},
		},
		ModelSettings: ModelSettings{
			Store:     &store,
			Reasoning: &Reasoning{Effort: "medium", Summary: "auto"},
		},
		Trace: TraceConfig{
			WorkflowName: "agent familiar",
			Metadata: map[string]string{
				"__trace_source__": "agent-builder",
				"workflow_id":      "wf_69678af259b88190b90406b5dee162630cb508e02a638d96",
			},
		},
	}
}

// LoadAgentDefinition returns the default definition, overlaid with the YAML
// file at path when path is set. Fields absent from the file keep their defaults.
func LoadAgentDefinition(path string) (*AgentDefinition, error) {
	def := DefaultAgentDefinition()
	if path == "" {
		return def, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("parse agent config %s: %w", path, err)
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config %s: %w", path, err)
	}
	return def, nil
}
