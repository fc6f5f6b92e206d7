package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabelScore is one entry of a class distribution.
type LabelScore struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Distribution is a class distribution kept in vocabulary order. It
// serializes as a JSON object whose keys appear in that order.
type Distribution []LabelScore

func (d Distribution) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ls := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ls.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ls.Probability)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Distribution) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("distribution: expected object, got %v", tok)
	}
	out := Distribution{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("distribution: expected string key, got %v", tok)
		}
		var p float64
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("distribution: %s: %w", label, err)
		}
		out = append(out, LabelScore{Label: label, Probability: p})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// ModelPredictions holds comparison results in request order. It serializes
// as a JSON object keyed by model name; a name requested more than once gets
// "#2", "#3", ... appended so every entry keeps its own key.
type ModelPredictions []PredictionResult

// Keys returns the JSON object keys in order.
func (p ModelPredictions) Keys() []string {
	seen := make(map[string]int, len(p))
	out := make([]string, len(p))
	for i, r := range p {
		seen[r.Model]++
		out[i] = r.Model
		if n := seen[r.Model]; n > 1 {
			out[i] = fmt.Sprintf("%s#%d", r.Model, n)
		}
	}
	return out
}

func (p ModelPredictions) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *ModelPredictions) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("predictions: expected object, got %v", tok)
	}
	out := ModelPredictions{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("predictions: expected string key, got %v", tok)
		}
		var r PredictionResult
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("predictions: %s: %w", key, err)
		}
		out = append(out, r)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}
