package payload

import (
	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// PopulationEmbedding is the reference cloud with the attributes used for
// coloring, and the named mean trajectories drawn over it.
type PopulationEmbedding struct {
	Samples []model.EmbeddingSample
	Lines   []model.Polyline
}

func (p *PopulationEmbedding) Points() []model.Point {
	res := make([]model.Point, len(p.Samples))
	for i, s := range p.Samples {
		res[i] = s.Point
	}
	return res
}

// DecodePopulationEmbedding reads `{"embed": [[x, y, age, egfr], ...],
// "traj": [[name, [[x, y], ...]], ...]}`.
func DecodePopulationEmbedding(raw []byte) (PopulationEmbedding, error) {
	doc, err := parse(raw, "population embedding")
	if err != nil {
		return PopulationEmbedding{}, err
	}

	res := PopulationEmbedding{
		Samples: []model.EmbeddingSample{},
		Lines:   []model.Polyline{},
	}
	if embed := doc.Get("embed"); embed.IsArray() {
		for _, row := range embed.Array() {
			res.Samples = append(res.Samples, model.EmbeddingSample{
				Point: point(row),
				Age:   Number(row.Get("2")),
				EGFR:  Number(row.Get("3")),
			})
		}
	}
	if traj := doc.Get("traj"); traj.IsArray() {
		for _, item := range traj.Array() {
			line := model.Polyline{Name: item.Get("0").String()}
			for _, p := range Array(item.Get("1")) {
				line.Points = append(line.Points, point(p))
			}
			res.Lines = append(res.Lines, line)
		}
	}
	return res, nil
}

// DecodePatientEmbedding reads `{"embed": [[x, y], ...]}` keeping the finite
// points only.
func DecodePatientEmbedding(raw []byte) ([]model.Point, error) {
	doc, err := parse(raw, "patient embedding")
	if err != nil {
		return nil, err
	}
	res := []model.Point{}
	for _, row := range Array(doc.Get("embed")) {
		p := point(row)
		if !utils.IsFinite(p.X) || !utils.IsFinite(p.Y) {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func point(v gjson.Result) model.Point {
	return model.Point{X: Number(v.Get("0")), Y: Number(v.Get("1"))}
}
