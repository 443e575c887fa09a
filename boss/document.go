package boss

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// document is the JSON shape requested from the generator.
type document struct {
	Name        string           `json:"name" jsonschema:"required,minLength=1,description=Epic and intimidating boss name"`
	Description string           `json:"description" jsonschema:"required,description=Striking visual description"`
	Color       string           `json:"color" jsonschema:"required,pattern=^#[0-9a-fA-F]{6}$,description=Main color as a hex code"`
	Size        float64          `json:"size" jsonschema:"required,minimum=60,maximum=100,description=Relative size"`
	Attacks     []documentAttack `json:"attacks" jsonschema:"required,minItems=1,description=Two or three unique special attacks"`
	Weakness    string           `json:"weakness" jsonschema:"required,description=Specific weak point"`
	Sound       string           `json:"sound" jsonschema:"required,description=Characteristic sound"`
	Entrance    string           `json:"entrance" jsonschema:"required,description=Threatening entrance line"`
	Difficulty  int              `json:"difficulty" jsonschema:"required,minimum=1,maximum=10,description=Difficulty level"`
}

type documentAttack struct {
	Name        string `json:"name" jsonschema:"required,minLength=1"`
	Description string `json:"description" jsonschema:"description=How the attack works"`
}

func toDocument(d Descriptor) document {
	attacks := make([]documentAttack, 0, len(d.Attacks))
	for _, a := range d.Attacks {
		attacks = append(attacks, documentAttack(a))
	}
	return document{
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
		Size:        d.Size,
		Attacks:     attacks,
		Weakness:    d.Weakness,
		Sound:       d.Sound,
		Entrance:    d.Entrance,
		Difficulty:  d.Difficulty,
	}
}

// Encode renders d as the structured block the generator is asked for.
// Provenance is not part of the encoding.
func Encode(d Descriptor) ([]byte, error) {
	data, err := json.MarshalIndent(toDocument(d), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("boss: encode %q: %w", d.Name, err)
	}
	return data, nil
}

// Schema returns the JSON schema of the structured block, indented for
// inclusion in a prompt.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(document{}))
	if schema == nil {
		return nil, fmt.Errorf("boss: reflect schema")
	}
	schema.Version = ""
	schema.Title = "Boss"
	schema.Description = "A unique boss for a Contra-style 2D shooter."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("boss: marshal schema: %w", err)
	}
	return data, nil
}
