package payload_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/uyouii/trajvis/common"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
)

// TestNumber covers numbers, numeric strings and everything else.
func TestNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`42`, 42},
		{`-1.5`, -1.5},
		{`"7.25"`, 7.25},
		{`" 3 "`, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, payload.Number(gjson.Parse(c.raw)), c.raw)
	}
	for _, raw := range []string{`""`, `"abc"`, `null`, `true`, `[1]`, `{}`} {
		assert.True(t, math.IsNaN(payload.Number(gjson.Parse(raw))), raw)
	}
}

// TestArray promotes scalars and treats null as empty.
func TestArray(t *testing.T) {
	doc := gjson.Parse(`{"a":[1,2],"s":5,"n":null}`)
	assert.Len(t, payload.Array(doc.Get("a")), 2)
	assert.Len(t, payload.Array(doc.Get("s")), 1)
	assert.Empty(t, payload.Array(doc.Get("n")))
	assert.Empty(t, payload.Array(doc.Get("missing")))
}

// TestRecords normalizes every accepted shape of a polymorphic field.
func TestRecords(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want int
	}{
		{"array of objects", `{"f":[{"a":1},{"a":2}]}`, 2},
		{"single object", `{"f":{"a":1}}`, 1},
		{"json string of array", `{"f":"[{\"a\":1},{\"a\":2},{\"a\":3}]"}`, 3},
		{"json string of object", `{"f":"{\"a\":1}"}`, 1},
		{"array of json strings", `{"f":["{\"a\":1}","{\"a\":2}"]}`, 2},
		{"plain string", `{"f":"hello"}`, 0},
		{"empty string", `{"f":""}`, 0},
		{"null", `{"f":null}`, 0},
		{"missing", `{}`, 0},
		{"number", `{"f":5}`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := payload.Records(gjson.Parse(c.doc).Get("f"))
			assert.Len(t, got, c.want)
			for _, r := range got {
				assert.True(t, r.IsObject(), "expected objects, got %s", r.Raw)
			}
		})
	}
}

// TestRecordLookup resolves alternative spellings by first non-null match.
func TestRecordLookup(t *testing.T) {
	rec := payload.NewRecord(gjson.Parse(`{"Age":null,"AGE":61.5,"concept_cd":"EGFR","concept":"X","nval_num":"88"}`))
	assert.Equal(t, 61.5, rec.Number(payload.AgeAttr))
	assert.Equal(t, "EGFR", rec.String(payload.ConceptAttr, ""))
	assert.Equal(t, 88.0, rec.Number(payload.ValueAttr))
	assert.Equal(t, "n/a", rec.String(payload.SexAttr, "n/a"))

	dotted := payload.NewRecord(gjson.Parse(`{"concept.cd":"HBA1C","nval.num":7.1}`))
	assert.Equal(t, "HBA1C", dotted.String(payload.ConceptAttr, ""))
	assert.Equal(t, 7.1, dotted.Number(payload.ValueAttr))

	assert.Equal(t, []string{"age", "Age", "AGE"}, payload.FieldNames(payload.AgeAttr))
}

// TestDecodePatientInvalid reports malformed json as an invalid payload.
func TestDecodePatientInvalid(t *testing.T) {
	_, err := payload.DecodePatient([]byte(`{"demo":`))
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)

	_, err = payload.DecodeAnalysis([]byte(`nope`))
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)
}

// TestPatientObservations truncates ages and skips unusable records.
func TestPatientObservations(t *testing.T) {
	raw := `{"records":"[{\"age\":55.9,\"concept.cd\":\"EGFR\",\"nval.num\":72},` +
		`{\"Age\":\"56\",\"concept_cd\":\" HBA1C \",\"value\":\"6.9\"},` +
		`{\"age\":57,\"concept\":\"\",\"val\":1},` +
		`{\"age\":\"x\",\"concept\":\"LDL\",\"val\":1},` +
		`{\"age\":58,\"concept\":\"LDL\",\"val\":null}]"}`
	bundle, err := payload.DecodePatient([]byte(raw))
	require.NoError(t, err)

	obs := bundle.Observations()
	assert.Equal(t, []model.Observation{
		{Age: 55, Concept: "EGFR", Value: 72},
		{Age: 56, Concept: "HBA1C", Value: 6.9},
	}, obs)
}

// TestPatientObservations_AgeBounds drops ages no integer age axis can hold.
func TestPatientObservations_AgeBounds(t *testing.T) {
	raw := `{"records":[` +
		`{"age":1e300,"concept":"EGFR","value":50},` +
		`{"age":-1e300,"concept":"EGFR","value":50},` +
		`{"age":-3,"concept":"EGFR","value":50},` +
		`{"age":151,"concept":"EGFR","value":50},` +
		`{"age":150.7,"concept":"EGFR","value":60},` +
		`{"age":50,"concept":"EGFR","value":70}]}`
	bundle, err := payload.DecodePatient([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []model.Observation{
		{Age: 150, Concept: "EGFR", Value: 60},
		{Age: 50, Concept: "EGFR", Value: 70},
	}, bundle.Observations())
}

// TestPatientSummary maps codes to labels and fills in the fallbacks.
func TestPatientSummary(t *testing.T) {
	raw := `{
		"demo": [{"sex_cd":"f","race":"W","DoB":"1960-01-02"}],
		"records": {"age": 64.25, "lastVisit": "2020-05-06"},
		"risk": "[{\"egfr\":58,\"acr\":\"30\",\"5year\":0.12}]"
	}`
	bundle, err := payload.DecodePatient([]byte(raw))
	require.NoError(t, err)

	s := bundle.Summary()
	assert.Equal(t, "Female", s.Gender)
	assert.Equal(t, "White", s.Race)
	assert.Equal(t, "64.2", s.Age)
	assert.Equal(t, "58", s.EGFR)
	assert.Equal(t, "30", s.ACR)
	assert.Equal(t, "0.12", s.FiveYearRisk)
	assert.Equal(t, "N/A", s.TwoYearRisk)
	assert.Equal(t, "1960-01-02", s.BirthDate)
	assert.Equal(t, "2020-05-06", s.LastVisit)

	empty, err := payload.DecodePatient([]byte(`{}`))
	require.NoError(t, err)
	es := empty.Summary()
	assert.Equal(t, "N/A", es.Gender)
	assert.Equal(t, "N/A", es.Race)
	assert.Equal(t, "N/A", es.Age)
	assert.Equal(t, "—", es.BirthDate)
	assert.Equal(t, "—", es.LastVisit)

	other, err := payload.DecodePatient([]byte(`{"demo":{"sex":"U","race_cd":"A"}}`))
	require.NoError(t, err)
	assert.Equal(t, "U", other.Summary().Gender)
	assert.Equal(t, "A", other.Summary().Race)
}

// TestDecodePatientList reads the id listing.
func TestDecodePatientList(t *testing.T) {
	ids, err := payload.DecodePatientList([]byte(`{"data":["p1",2,""]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "2"}, ids)
}

// TestDecodeAnalysis reads trajectories, areas, probabilities and distributions.
func TestDecodeAnalysis(t *testing.T) {
	raw := `{
		"sex_dist": [["orange", 0.4, "0.6"], ["blue", null, 0.5]],
		"race_dist": [["green", 0.2, 0.8]],
		"traj": {"blue": [[50, 80], [51, "x"]], "orange": [[50, 70]], "green": [52, 90]},
		"blue_area": [[50, 75, 85]],
		"x_range": [19, 20],
		"orange_poss": [0.1, 0.2],
		"blue_poss": [0.3],
		"green_poss": [0.6, 0.6, 0.7],
		"age_last": "63.5"
	}`
	b, err := payload.DecodeAnalysis([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []payload.Composition{
		{Group: "orange", Shares: [2]float64{0.4, 0.6}},
		{Group: "blue", Shares: [2]float64{0, 0.5}},
	}, b.SexDist)
	assert.Len(t, b.RaceDist, 1)

	require.Len(t, b.Blue, 2)
	assert.True(t, math.IsNaN(b.Blue[1].Value))
	assert.Equal(t, []model.TimePoint{{Key: 50, Value: 70}}, b.Orange)
	// a bare pair is promoted to a list of one scalar each, neither is a pair
	assert.Len(t, b.Green, 2)

	assert.Equal(t, []model.Triplet{{Key: 50, Y1: 75, Y2: 85}}, b.BlueArea)
	assert.Empty(t, b.OrangeArea)

	assert.Equal(t, 1, b.Probabilities.Len())
	assert.Equal(t, model.Float(63.5), b.AgeLast)

	none, err := payload.DecodeAnalysis([]byte(`{"age_last": null}`))
	require.NoError(t, err)
	assert.False(t, none.AgeLast.Valid)
}

// TestLabtestSeriesFor resolves ages by index and falls back on sentinels.
func TestLabtestSeriesFor(t *testing.T) {
	raw := `{
		"ages": [50, 51, 52, 53],
		"concepts": ["EGFR", "LDL"],
		"data": [
			[2, 0, 61, "EGFR"],
			[0, 0, 70, "EGFR"],
			[1, 5, 9999, 3, 8, "EGFR"],
			[3, 0, -9999, "EGFR"],
			[9, 0, 40, "EGFR"],
			[1.5, 0, 40, "EGFR"],
			[1, 0, 120, "LDL"]
		]
	}`
	lab, err := payload.DecodeLabtest([]byte(raw))
	require.NoError(t, err)
	assert.True(t, lab.HasConcept("LDL"))
	assert.False(t, lab.HasConcept("HDL"))

	got := lab.SeriesFor("EGFR")
	assert.Equal(t, []model.TimePoint{
		{Key: 50, Value: 70},
		// candidates 1, 5, 3, 8 sorted to 1, 3, 5, 8, upper median 5
		{Key: 51, Value: 5},
		{Key: 52, Value: 61},
		// candidates 3, 0 sorted to 0, 3, upper median 3
		{Key: 53, Value: 3},
	}, got)

	assert.Equal(t, []model.TimePoint{{Key: 51, Value: 120}}, lab.SeriesFor("LDL"))
	assert.Empty(t, lab.SeriesFor("HDL"))

	bad, err := payload.DecodeLabtest([]byte(`{"concepts":["EGFR"]}`))
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.Equal(t, []string{"EGFR"}, bad.Concepts)
	assert.Empty(t, bad.SeriesFor("EGFR"))
}

// TestDecodeEmbeddings reads the population cloud, lines and patient points.
func TestDecodeEmbeddings(t *testing.T) {
	pop, err := payload.DecodePopulationEmbedding([]byte(`{
		"embed": [[1, 2, 60, 90], [3, "4", null, 70]],
		"traj": [["blue", [[0, 0], [1, 1]]], ["orange", []]]
	}`))
	require.NoError(t, err)
	require.Len(t, pop.Samples, 2)
	assert.Equal(t, model.Point{X: 3, Y: 4}, pop.Samples[1].Point)
	assert.True(t, math.IsNaN(pop.Samples[1].Age))
	assert.Equal(t, []model.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, pop.Points())
	require.Len(t, pop.Lines, 2)
	assert.Equal(t, "blue", pop.Lines[0].Name)
	assert.Len(t, pop.Lines[0].Points, 2)

	pts, err := payload.DecodePatientEmbedding([]byte(`{"embed": [[1, 1], ["a", 2], [2, 2]]}`))
	require.NoError(t, err)
	assert.Equal(t, []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, pts)

	_, err = payload.DecodePatientEmbedding([]byte(`{`))
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)
}
