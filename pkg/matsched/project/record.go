// Package project defines the project-record aggregate the schedule engine
// reads. The record is a read-only snapshot owned by the caller.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Record is the project snapshot handed to the engine.
type Record struct {
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name,omitempty"`
	BOQSections       []BOQSection       `json:"boqSections,omitempty"`
	ConcreteMaterials []ConcreteMaterial `json:"concreteMaterials,omitempty"`
	RebarCalculations []RebarCalculation `json:"rebarCalculations,omitempty"`
	Rooms             []Room             `json:"rooms,omitempty"`
	Specifications    *Specifications    `json:"specifications,omitempty"`

	// DecodeErrs lists top-level fields that could not be decoded. Those
	// fields are left empty and the rest of the record is kept.
	DecodeErrs []*FieldError `json:"-"`
}

// FieldError is a top-level record field that failed to decode.
type FieldError struct {
	Field string // JSON key, e.g. "rooms"
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %s: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// BOQSection groups BOQ items; its title doubles as the item location.
type BOQSection struct {
	Title string    `json:"title"`
	Items []BOQItem `json:"items"`

	// DecodeErr is set when a section field could not be decoded. The
	// fields that did decode are kept.
	DecodeErr error `json:"-"`
}

// BOQItem is one bill-of-quantities line.
type BOQItem struct {
	Description       string         `json:"description"`
	Category          string         `json:"category,omitempty"`
	Element           string         `json:"element,omitempty"`
	Unit              string         `json:"unit,omitempty"`
	Quantity          Number         `json:"quantity"`
	Rate              Number         `json:"rate"`
	Amount            Number         `json:"amount"`
	IsHeader          bool           `json:"isHeader,omitempty"`
	MaterialBreakdown []BreakdownRow `json:"materialBreakdown,omitempty"`

	// DecodeErr is set when the item could not be decoded; adapters skip it.
	DecodeErr error `json:"-"`
}

// BreakdownRow is an explicit per-unit material decomposition on a BOQ item.
type BreakdownRow struct {
	Material         string                  `json:"material"`
	Unit             string                  `json:"unit"`
	Category         string                  `json:"category"`
	Element          string                  `json:"element"`
	Ratio            Number                  `json:"ratio"`
	Kind             string                  `json:"materialType,omitempty"`
	Requirements     []string                `json:"requirements,omitempty"`
	PreparationSteps []string                `json:"preparationSteps,omitempty"`
	Relationships    []material.Relationship `json:"relationships,omitempty"`
}

// ConcreteMaterial is one line from the concrete calculator.
type ConcreteMaterial struct {
	Name       string `json:"name"`
	Quantity   Number `json:"quantity"`
	UnitPrice  Number `json:"unitPrice"`
	TotalPrice Number `json:"totalPrice"`
	Location   string `json:"location,omitempty"`

	DecodeErr error `json:"-"`
}

// RebarCalculation is one reinforcement schedule entry.
type RebarCalculation struct {
	Category       string `json:"category,omitempty"`
	Description    string `json:"description,omitempty"`
	PrimaryBarSize string `json:"primaryBarSize,omitempty"`
	Unit           string `json:"unit,omitempty"`
	Quantity       Number `json:"quantity"`
	TotalWeightKg  Number `json:"totalWeightKg"`
	Rate           Number `json:"rate"`
	PricePerMeter  Number `json:"pricePerMeter"`
	Amount         Number `json:"amount"`
	TotalPrice     Number `json:"totalPrice"`
	Location       string `json:"location,omitempty"`

	DecodeErr error `json:"-"`
}

// Room is a room/wall definition from the room calculator.
type Room struct {
	RoomName string `json:"roomName"`
	WallArea Number `json:"wallArea"`
	WallRate Number `json:"wallRate"`

	DecodeErr error `json:"-"`
}

// Specifications carries project-wide mix settings that rescale breakdowns.
type Specifications struct {
	ConcreteMixRatio string `json:"concreteMixRatio,omitempty"`
	MortarRatio      string `json:"mortarRatio,omitempty"`
	IncludeWastage   bool   `json:"includeWastage,omitempty"`

	DecodeErr error `json:"-"`
}

// UnmarshalJSON decodes each top-level field on its own, so one malformed
// source is recorded in DecodeErrs instead of failing the whole record.
// Input that is not a JSON object is still an error.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Record{}
	field := func(key string, dst any) {
		v, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			r.DecodeErrs = append(r.DecodeErrs, &FieldError{Field: key, Err: err})
		}
	}
	field("id", &r.ID)
	field("name", &r.Name)
	field("boqSections", &r.BOQSections)
	field("concreteMaterials", &r.ConcreteMaterials)
	field("rebarCalculations", &r.RebarCalculations)
	field("rooms", &r.Rooms)
	field("specifications", &r.Specifications)
	return nil
}

// Section and specification decoders keep whatever decoded alongside the
// error; encoding/json fills the remaining fields after a type mismatch.

func (s *BOQSection) UnmarshalJSON(b []byte) error {
	type plain BOQSection
	var p plain
	err := json.Unmarshal(b, &p)
	*s = BOQSection(p)
	s.DecodeErr = err
	return nil
}

func (sp *Specifications) UnmarshalJSON(b []byte) error {
	type plain Specifications
	var p plain
	err := json.Unmarshal(b, &p)
	*sp = Specifications(p)
	sp.DecodeErr = err
	return nil
}

// Item decoders never fail: a malformed item keeps its decode error in
// DecodeErr so adapters can skip it and the rest of the record survives.

func (it *BOQItem) UnmarshalJSON(b []byte) error {
	type plain BOQItem
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		*it = BOQItem{DecodeErr: err}
		return nil
	}
	*it = BOQItem(p)
	return nil
}

func (c *ConcreteMaterial) UnmarshalJSON(b []byte) error {
	type plain ConcreteMaterial
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		*c = ConcreteMaterial{DecodeErr: err}
		return nil
	}
	*c = ConcreteMaterial(p)
	return nil
}

func (r *RebarCalculation) UnmarshalJSON(b []byte) error {
	type plain RebarCalculation
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		*r = RebarCalculation{DecodeErr: err}
		return nil
	}
	*r = RebarCalculation(p)
	return nil
}

func (r *Room) UnmarshalJSON(b []byte) error {
	type plain Room
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		*r = Room{DecodeErr: err}
		return nil
	}
	*r = Room(p)
	return nil
}

// Decode parses a JSON project record.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode project record: %w", err)
	}
	return rec, nil
}

// LoadFile reads a JSON project record from disk.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read file %s: %w", path, err)
	}
	return Decode(data)
}
