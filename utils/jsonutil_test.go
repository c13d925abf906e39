package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type place struct {
    Name string  `json:"name"`
    Lat  float64 `json:"lat"`
}

func TestDecodeModelJSONRawArray(t *testing.T) {
    var places []place
    err := DecodeModelJSON(`[{"name":"City Hospital","lat":12.97}]`, &places)

    require.NoError(t, err)
    require.Len(t, places, 1)
    assert.Equal(t, "City Hospital", places[0].Name)
    assert.InDelta(t, 12.97, places[0].Lat, 1e-9)
}

func TestDecodeModelJSONMarkdownFence(t *testing.T) {
    input := "```json\n[{\"name\":\"Rural Clinic\",\"lat\":28.6}]\n```"

    var places []place
    require.NoError(t, DecodeModelJSON(input, &places))
    require.Len(t, places, 1)
    assert.Equal(t, "Rural Clinic", places[0].Name)
}

func TestDecodeModelJSONBareFence(t *testing.T) {
    input := "```\n{\"name\":\"Care Center\",\"lat\":19.07}\n```"

    var p place
    require.NoError(t, DecodeModelJSON(input, &p))
    assert.Equal(t, "Care Center", p.Name)
}

func TestDecodeModelJSONSurroundingProse(t *testing.T) {
    input := `Here are the facilities I found: [{"name":"District Hospital","lat":22.57}] Hope that helps!`

    var places []place
    require.NoError(t, DecodeModelJSON(input, &places))
    require.Len(t, places, 1)
    assert.Equal(t, "District Hospital", places[0].Name)
}

func TestDecodeModelJSONBracketsInsideStrings(t *testing.T) {
    input := `[{"name":"St. Mary's [Main] Hospital","lat":13.08}]`

    var places []place
    require.NoError(t, DecodeModelJSON(input, &places))
    assert.Equal(t, "St. Mary's [Main] Hospital", places[0].Name)
}

func TestDecodeModelJSONRejectsGarbage(t *testing.T) {
    var places []place
    assert.Error(t, DecodeModelJSON("I could not find any facilities nearby.", &places))
    assert.Error(t, DecodeModelJSON("", &places))
}
