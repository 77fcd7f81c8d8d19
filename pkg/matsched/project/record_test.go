package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNumberLenientDecoding(t *testing.T) {
	data := []byte(`{
		"rooms": [
			{"roomName": "A", "wallArea": 12.5, "wallRate": "1,200"},
			{"roomName": "B", "wallArea": "abc", "wallRate": null},
			{"roomName": "C", "wallArea": true}
		]
	}`)
	rec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(rec.Rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rec.Rooms))
	}
	if !rec.Rooms[0].WallArea.Valid || rec.Rooms[0].WallArea.Value != 12.5 {
		t.Errorf("wallArea = %+v", rec.Rooms[0].WallArea)
	}
	if rec.Rooms[0].WallRate.Value != 1200 {
		t.Errorf("wallRate = %+v", rec.Rooms[0].WallRate)
	}
	if rec.Rooms[1].WallArea.Valid || rec.Rooms[1].WallRate.Valid {
		t.Errorf("garbage should decode as absent: %+v", rec.Rooms[1])
	}
	if rec.Rooms[2].WallArea.Valid {
		t.Errorf("bool should decode as absent")
	}
}

func TestMalformedItemKeepsRestOfRecord(t *testing.T) {
	data := []byte(`{
		"boqSections": [{"title": "Ground Floor", "items": [
			{"description": 42, "quantity": 3},
			{"description": "Block wall", "quantity": 10, "rate": 500}
		]}],
		"concreteMaterials": ["not an object", {"name": "Cement", "quantity": 5}]
	}`)
	rec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	items := rec.BOQSections[0].Items
	if items[0].DecodeErr == nil {
		t.Error("expected decode error on first item")
	}
	if items[1].DecodeErr != nil || items[1].Description != "Block wall" {
		t.Errorf("second item: %+v", items[1])
	}
	if rec.ConcreteMaterials[0].DecodeErr == nil {
		t.Error("expected decode error on non-object concrete entry")
	}
	if rec.ConcreteMaterials[1].Name != "Cement" {
		t.Errorf("concrete entry: %+v", rec.ConcreteMaterials[1])
	}
}

func TestMalformedSourceKeepsOtherSources(t *testing.T) {
	data := []byte(`{
		"name": "Annex",
		"boqSections": [
			{"title": 5, "items": [{"description": "Block wall", "quantity": 10}]},
			{"title": "Roof", "items": [{"description": "Roof tiles", "quantity": 80}]}
		],
		"concreteMaterials": [{"name": "Cement", "quantity": 5}],
		"rooms": {"roomName": "Hall"},
		"specifications": {"concreteMixRatio": "1:2:4", "includeWastage": "yes"}
	}`)
	rec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.Name != "Annex" || len(rec.ConcreteMaterials) != 1 || rec.ConcreteMaterials[0].Name != "Cement" {
		t.Errorf("valid sources lost: %+v", rec)
	}

	if len(rec.DecodeErrs) != 1 || rec.DecodeErrs[0].Field != "rooms" || rec.Rooms != nil {
		t.Errorf("decode errors = %v, rooms = %+v", rec.DecodeErrs, rec.Rooms)
	}

	bad := rec.BOQSections[0]
	if bad.DecodeErr == nil || bad.Title != "" {
		t.Errorf("bad section = %+v", bad)
	}
	if len(bad.Items) != 1 || bad.Items[0].Description != "Block wall" {
		t.Errorf("items of bad section lost: %+v", bad.Items)
	}
	if rec.BOQSections[1].DecodeErr != nil || rec.BOQSections[1].Title != "Roof" {
		t.Errorf("good section = %+v", rec.BOQSections[1])
	}

	specs := rec.Specifications
	if specs == nil || specs.DecodeErr == nil || specs.ConcreteMixRatio != "1:2:4" || specs.IncludeWastage {
		t.Errorf("specifications = %+v", specs)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	for _, in := range []string{`42`, `"record"`, `{not json`} {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%s) should fail", in)
		}
	}
}

func TestFirstPositive(t *testing.T) {
	if got := FirstPositive(Number{}, Num(0), Num(7), Num(9)); got != 7 {
		t.Errorf("FirstPositive = %v, want 7", got)
	}
	if got := FirstPositive(); got != 0 {
		t.Errorf("FirstPositive() = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(path, []byte(`{"name":"House","specifications":{"concreteMixRatio":"1:2:4"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	rec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if rec.Name != "House" || rec.Specifications == nil || rec.Specifications.ConcreteMixRatio != "1:2:4" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
