package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TimePoint is one sample on the key axis, the key is usually patient age in years.
type TimePoint struct {
	Key   float64 `json:"key"`
	Value float64 `json:"value"`
}

func (p *TimePoint) Less(point TimePoint) bool {
	return p.Key < point.Key
}

type NamedSeries struct {
	// Name is the column name in the merged table, like "CKD" or "left"
	Name   string
	Points []TimePoint
}

func (s *NamedSeries) DebugString() string {
	res := fmt.Sprintf("name: %+v, pointCount: %+v", s.Name, len(s.Points))
	return res
}

func (s *NamedSeries) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Points) == 0
}

// NullFloat marks a value that may be missing, missing values encode as json null.
type NullFloat struct {
	Value float64
	Valid bool
}

func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

type MergedRow struct {
	Key float64 `json:"key"`
	// Values is aligned with MergedTable.Names
	Values []NullFloat `json:"values"`
}

type MergedTable struct {
	Names []string    `json:"names"`
	Rows  []MergedRow `json:"rows"`
}

func (t *MergedTable) Keys() []float64 {
	res := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		res[i] = row.Key
	}
	return res
}

// Column returns the values of one named series, ok is false for an unknown name.
func (t *MergedTable) Column(name string) ([]NullFloat, bool) {
	idx := -1
	for i, n := range t.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	res := make([]NullFloat, len(t.Rows))
	for i, row := range t.Rows {
		res[i] = row.Values[idx]
	}
	return res, true
}

// HasValues reports whether any cell of the table is present.
func (t *MergedTable) HasValues() bool {
	for _, row := range t.Rows {
		for _, v := range row.Values {
			if v.Valid {
				return true
			}
		}
	}
	return false
}

type Triplet struct {
	Key float64
	Y1  float64
	Y2  float64
}

// Band is one row of a shaded uncertainty region, upper = Lower + Gap.
type Band struct {
	Key   float64 `json:"key"`
	Lower float64 `json:"lower"`
	Gap   float64 `json:"gap"`
}

func (b *Band) Upper() float64 {
	return b.Lower + b.Gap
}
