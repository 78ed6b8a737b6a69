package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/gbnfschema/internal/grammar"
	"github.com/normanking/gbnfschema/internal/validate"
)

func TestLoad_FindsAllWorkedExamples(t *testing.T) {
	registry, err := Load([]string{"../../examples"})
	require.NoError(t, err)

	for _, name := range []string{"character", "stats", "profile", "event", "quest_log"} {
		assert.Contains(t, registry, name)
	}
}

func TestLoad_MissingDirectoryIsNotAnError(t *testing.T) {
	registry, err := Load([]string{"../../no-such-directory"})
	require.NoError(t, err)
	assert.Empty(t, registry)
}

func TestLoad_CharacterSchemaCompilesAndValidates(t *testing.T) {
	registry, err := Load([]string{"../../examples"})
	require.NoError(t, err)
	require.Contains(t, registry, "character")

	root := registry["character"].Root

	_, err = grammar.Compile(root)
	require.NoError(t, err)

	ok, errs := validate.Validate(root, `{"name":"Narada","class":"warrior","level":5}`)
	assert.True(t, ok, "errs: %v", errs)
}

func TestLoad_EventSchemaVariantRoundTrips(t *testing.T) {
	registry, err := Load([]string{"../../examples"})
	require.NoError(t, err)
	require.Contains(t, registry, "event")

	root := registry["event"].Root
	ok, errs := validate.Validate(root, `{"type":"combat","data":{"enemy":"ogre","enemyLevel":7}}`)
	assert.True(t, ok, "errs: %v", errs)
}

func TestNames_ReturnsSortedNames(t *testing.T) {
	registry, err := Load([]string{"../../examples"})
	require.NoError(t, err)

	names := Names(registry)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}
