package journey

import (
	"strings"
	"testing"
)

func testJourney() *Journey {
	return &Journey{
		Start:          "shire",
		TargetDistance: 300,
		Locations: map[string]*Location{
			"shire":   {Key: "shire", Name: "The Shire", Distance: 0, Next: "bree", Kind: KindWild},
			"bree":    {Key: "bree", Name: "Bree", Distance: 100, Next: "moria", Kind: KindTown},
			"moria":   {Key: "moria", Name: "Moria", Distance: 200, Next: "mountdoom", Kind: KindTown},
			"orphan":  {Key: "orphan", Name: "Side Path", Distance: 150, Kind: KindWild},
			"mountdoom": {
				Key: "mountdoom", Name: "Mount Doom", Distance: 300, Kind: KindEnd,
			},
		},
		Professions: map[string]Profession{
			"Baggins": {Food: 100, Supplies: 50, Gold: 100},
		},
	}
}

func TestCanonicalPath(t *testing.T) {
	j := testJourney()
	path := j.CanonicalPath()
	want := []string{"shire", "bree", "moria", "mountdoom"}
	if len(path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, path)
		}
	}
}

func TestCanonicalPath_CycleTerminates(t *testing.T) {
	j := testJourney()
	j.Locations["mountdoom"].Next = "shire"
	path := j.CanonicalPath()
	if len(path) != 4 {
		t.Errorf("cycle must not loop forever, got %v", path)
	}
}

func TestNextOf(t *testing.T) {
	j := testJourney()
	if next := j.NextOf("shire"); next == nil || next.Key != "bree" {
		t.Errorf("expected next of shire to be bree, got %+v", next)
	}
	if next := j.NextOf("mountdoom"); next != nil {
		t.Errorf("terminal node should have no next, got %+v", next)
	}
	if next := j.NextOf("nowhere"); next != nil {
		t.Errorf("unknown key should have no next, got %+v", next)
	}
}

func TestEnd(t *testing.T) {
	j := testJourney()
	if end := j.End(); end != "mountdoom" {
		t.Errorf("expected end mountdoom, got %q", end)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := testJourney().Validate(nil); err != nil {
		t.Errorf("expected valid content, got: %v", err)
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	j := testJourney()
	j.Start = "nowhere"
	j.TargetDistance = 0
	j.Locations["bree"].Name = ""
	j.Locations["bree"].Next = "missing"
	j.Locations["moria"].Kind = "castle"
	j.Professions["Took"] = Profession{Food: 0, Supplies: 1, Gold: 1}

	err := j.Validate(nil)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		`start location "nowhere" is not in the graph`,
		"target_distance must be positive",
		`location "bree": name is required`,
		`location "bree": next "missing" is not in the graph`,
		`location "moria": unknown kind "castle"`,
		`profession "Took": presets must be positive`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to contain %q, got:\n%v", want, err)
		}
	}
}

func TestValidate_DistanceMustIncrease(t *testing.T) {
	j := testJourney()
	j.Locations["bree"].Distance = 250 // past moria at 200

	err := j.Validate(nil)
	if err == nil || !strings.Contains(err.Error(), "does not increase distance") {
		t.Errorf("expected distance ordering error, got: %v", err)
	}
}

func TestValidate_ExactlyOneEnd(t *testing.T) {
	j := testJourney()
	j.Locations["orphan"].Kind = KindEnd

	err := j.Validate(nil)
	if err == nil || !strings.Contains(err.Error(), "exactly one end node") {
		t.Errorf("expected end-count error, got: %v", err)
	}
}

func TestValidate_UnknownArrivalEncounter(t *testing.T) {
	j := testJourney()
	j.Locations["moria"].ArrivalEncounter = "west_gate"

	known := func(id string) bool { return false }
	err := j.Validate(known)
	if err == nil || !strings.Contains(err.Error(), `arrival encounter "west_gate" is not in the catalog`) {
		t.Errorf("expected arrival encounter error, got: %v", err)
	}

	// nil checker skips the catalog check entirely
	if err := j.Validate(nil); err != nil {
		t.Errorf("nil checker should skip arrival encounters, got: %v", err)
	}
}
