package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix90/matchtree/engine"
)

func TestParse_unconditionalOutput(t *testing.T) {
	data := []byte(`
rules:
  - id: 1
    inputs:
      - "hello *"
    outputs:
      - template: "hi there"
`)
	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, []string{"hello *"}, got[0].Inputs)

	out, ok := got[0].Output.NextValidOutput(engine.NewVariableStack())
	assert.True(t, ok)
	assert.Equal(t, "hi there", out)
}

func TestParse_conditionalOutputs(t *testing.T) {
	data := []byte(`
rules:
  - id: 2
    inputs:
      - "set color to [color]"
    outputs:
      - when:
          var: color
          equals: red
        template: "fire engine red, got it"
      - when:
          var: color
          not_empty: true
        template: "ok, [color] it is"
`)
	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got, 1)

	red := engine.NewVariableStack()
	red.Update("color", 0)
	red.Capture("red", 0)
	out, ok := got[0].Output.NextValidOutput(red)
	assert.True(t, ok)
	assert.Equal(t, "fire engine red, got it", out)

	blue := engine.NewVariableStack()
	blue.Update("color", 0)
	blue.Capture("blue", 0)
	out2, ok2 := got[0].Output.NextValidOutput(blue)
	assert.True(t, ok2)
	assert.Equal(t, "ok, [color] it is", out2)
}

func TestParse_noOutputsIsAnError(t *testing.T) {
	data := []byte(`
rules:
  - id: 3
    inputs: ["hi"]
    outputs: []
`)
	_, err := Parse(data)
	assert.Error(t, err)
}

func TestLoadFile_missingFileIsAnError(t *testing.T) {
	_, err := LoadFile("/nonexistent/rules.yaml")
	assert.Error(t, err)
}
