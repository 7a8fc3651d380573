package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WessleyAI/wessley-vin/engine/vin"
)

func TestListMakes(t *testing.T) {
	c := vin.Default()
	makes := ListMakes(c)
	require.Len(t, makes, len(c.Manufacturers()))

	byName := make(map[string]MakeInfo, len(makes))
	for i, m := range makes {
		if i > 0 {
			assert.Less(t, makes[i-1].Name, m.Name)
		}
		byName[m.Name] = m
	}

	vw := byName["Volkswagen"]
	assert.Contains(t, vw.WMIs, "WVW")
	assert.Equal(t, c.Models("Volkswagen"), vw.Models)

	saab, ok := byName["Saab"]
	require.True(t, ok)
	assert.NotNil(t, saab.Models)
	assert.Empty(t, saab.Models)
}
