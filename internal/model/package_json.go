package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// looseFloat decodes a JSON number or a string holding one. Records written by
// form inputs carry weights and quantities as strings; an empty string is zero.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse number %s: %w", b, err)
	}
	*f = looseFloat(v)
	return nil
}

// UnmarshalJSON accepts weight and quantity as numbers or numeric strings.
func (p *Package) UnmarshalJSON(b []byte) error {
	type plain Package
	aux := struct {
		*plain
		Weight   looseFloat `json:"weight"`
		Quantity looseFloat `json:"quantity"`
	}{plain: (*plain)(p), Weight: looseFloat(p.Weight), Quantity: looseFloat(p.Quantity)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	p.Weight = float64(aux.Weight)
	p.Quantity = float64(aux.Quantity)
	return nil
}
