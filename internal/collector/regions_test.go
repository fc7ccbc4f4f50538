package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelector(t *testing.T) {
	assert.NoError(t, ValidateSelector("all"))
	for _, region := range Regions {
		assert.NoError(t, ValidateSelector(region))
	}
}

func TestValidateSelector_Unknown(t *testing.T) {
	err := ValidateSelector("mars-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mars-1")
	// The message names the valid options.
	assert.Contains(t, err.Error(), "us-east-1")
	assert.Contains(t, err.Error(), "af-south-1")
	assert.Contains(t, err.Error(), `"all"`)
}

func TestValidateSelector_Empty(t *testing.T) {
	assert.Error(t, ValidateSelector(""))
}

func TestRegions_CatalogOrder(t *testing.T) {
	require.Len(t, Regions, 23)
	assert.Equal(t, "ap-east-1", Regions[0])
	assert.Equal(t, "us-east-1", Regions[16])
	assert.Equal(t, "af-south-1", Regions[22])
}
