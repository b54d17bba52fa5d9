package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/journey"
)

func main() {
	path := "data/journey.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := validateFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Journey content is valid!")
}

func validateFile(path string) error {
	fmt.Printf("Validating %s...\n", path)

	if filepath.Ext(path) != ".json" {
		return fmt.Errorf("journey file must have .json extension: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var j journey.Journey
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&j); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", path, err)
	}

	catalog := encounter.DefaultCatalog(&j)
	if err := catalog.Validate(); err != nil {
		return err
	}
	if err := j.Validate(catalog.Has); err != nil {
		return err
	}
	return encounter.ValidateTowns(encounter.DefaultTowns(), &j)
}
