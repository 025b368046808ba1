package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","table":{"rows":[
{"c":[{"v":"No."},{"v":"Date"},{"v":"Event"},{"v":"Distance"},{"v":"Time"},{"v":"Position"},{"v":"Elevation"},{"v":"Video"},{"v":"Report"},{"v":"Strava"},{"v":"Results"},{"v":"Type"},{"v":"Terrain"}]},
{"c":[{"v":1.0},{"v":"Date(2022,6,29)","f":"29/07/2022"},{"v":"Lakeland 100"},{"v":167.0},{"v":null,"f":"34:36:56"},{"v":"77"},{"v":6300.0},{"v":"Film||https://youtu.be/dQw4w9WgXcQ"},null,{"v":"https://strava.com/x"},null,{"v":"Ultra"},{"v":"Trail"}]}
]}});`

func TestUnwrap(t *testing.T) {
	table, err := Unwrap(sampleResponse)
	require.NoError(t, err)
	assert.Len(t, table.Table.Rows, 2)
}

func TestUnwrapRejectsBadFormat(t *testing.T) {
	_, err := Unwrap("<html>sign in required</html>")
	assert.Error(t, err)

	_, err = Unwrap("google.visualization.Query.setResponse(")
	assert.Error(t, err)
}

func TestRowsToInputs(t *testing.T) {
	table, err := Unwrap(sampleResponse)
	require.NoError(t, err)

	inputs := RowsToInputs(table)
	require.Len(t, inputs, 1)

	in := inputs[0]
	assert.Equal(t, "Lakeland 100", in.Event)
	assert.Equal(t, "29/07/2022", in.Date)
	assert.Equal(t, "34:36:56", in.TimeHms)
	assert.Equal(t, "Ultra", in.Type)
	assert.Equal(t, "Trail", in.Terrain)
	assert.Equal(t, "Film||https://youtu.be/dQw4w9WgXcQ", in.VideoUrl)
	require.NotNil(t, in.DistanceKm)
	assert.Equal(t, 167.0, *in.DistanceKm)
	require.NotNil(t, in.Elevation)
	assert.Equal(t, 6300, *in.Elevation)
}
