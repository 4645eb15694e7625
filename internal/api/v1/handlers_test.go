package apiv1

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
)

func TestBuildLocationSuggestionsMergesAndRanks(t *testing.T) {
	cities := []repository.LocationCount{
		{City: "Lima", Count: 5},
		{City: "Arequipa", Count: 2},
	}
	districts := []repository.LocationCount{
		{District: "Miraflores", City: "Lima", Count: 8},
	}

	suggestions := buildLocationSuggestions(cities, districts)

	assert.Len(t, suggestions, 3)
	assert.Equal(t, "Miraflores", suggestions[0].Text)
	assert.Equal(t, "Miraflores, Lima", suggestions[0].FullText)
	assert.Equal(t, "district", suggestions[0].Type)
	assert.Equal(t, "Lima", suggestions[1].Text)
	assert.Equal(t, "city", suggestions[1].Type)
	assert.Equal(t, "Arequipa", suggestions[2].Text)
}

func TestBuildLocationSuggestionsSkipsBlanksAndDuplicates(t *testing.T) {
	cities := []repository.LocationCount{
		{City: "Lima", Count: 5},
		{City: "lima", Count: 3},
		{City: "  ", Count: 2},
	}
	districts := []repository.LocationCount{
		{District: "Centro", City: "Lima", Count: 4},
		{District: "centro", City: "Arequipa", Count: 1},
		{District: "", City: "Lima", Count: 9},
	}

	suggestions := buildLocationSuggestions(cities, districts)

	assert.Len(t, suggestions, 2)
	assert.Equal(t, "Lima", suggestions[0].Text)
	assert.Equal(t, "Centro", suggestions[1].Text)
}

func TestBuildLocationSuggestionsCapsTheList(t *testing.T) {
	var cities, districts []repository.LocationCount
	for i := 0; i < 8; i++ {
		cities = append(cities, repository.LocationCount{
			City: fmt.Sprintf("City %d", i), Count: int64(20 - i),
		})
		districts = append(districts, repository.LocationCount{
			District: fmt.Sprintf("District %d", i), City: "Lima", Count: int64(10 - i),
		})
	}

	suggestions := buildLocationSuggestions(cities, districts)

	assert.Len(t, suggestions, maxLocationSuggestions)
	assert.Equal(t, "City 0", suggestions[0].Text)
}

func TestNoMatchesMessage(t *testing.T) {
	message := noMatchesMessage("Cusco", []repository.LocationCount{
		{City: "Lima"}, {City: "Arequipa"},
	})
	assert.Contains(t, message, `"Cusco"`)
	assert.Contains(t, message, "Lima, Arequipa")

	message = noMatchesMessage("Cusco", nil)
	assert.Contains(t, message, "Try another location")
}
