package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"pipet/internal/pipeline"
)

func TestParamsDeclareSetGet(t *testing.T) {
	params := pipeline.NewParams()
	params.Declare("tr", 2)
	params.Declare("template_path", "")

	if err := params.Set("tr", 3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if value, ok := params.Get("tr"); !ok || value != 3 {
		t.Fatalf("unexpected value: %v ok=%v", value, ok)
	}

	err := params.Set("fwhm", 0.5)
	if !errors.Is(err, pipeline.ErrUnknownParameterName) {
		t.Fatalf("expected ErrUnknownParameterName, got %v", err)
	}

	all := params.All()
	if len(all) != 2 || all["template_path"] != "" {
		t.Fatalf("unexpected All(): %v", all)
	}
	names := params.Names()
	if len(names) != 2 || names[0] != "tr" || names[1] != "template_path" {
		t.Fatalf("declaration order lost: %v", names)
	}
}

func TestParamsApplyStopsAtUndeclared(t *testing.T) {
	params := pipeline.NewParams()
	params.Declare("anat", "anat")

	if err := params.Apply(map[string]any{"nope": 1}); !errors.Is(err, pipeline.ErrUnknownParameterName) {
		t.Fatalf("expected ErrUnknownParameterName, got %v", err)
	}
	if err := params.Apply(map[string]any{"anat": "T1w"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := params.String("anat"); got != "T1w" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestStepRegistryIndicesAreContiguous(t *testing.T) {
	def := pipeline.NewDefinition(nil, "T1proc")
	var order []string
	for _, name := range []string{"denoise", "motion", "normalize"} {
		name := name
		def.AddStep(name, "", func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	reg := pipeline.NewStepRegistry(def)
	if reg.Len() != 3 {
		t.Fatalf("unexpected length: %d", reg.Len())
	}
	names := reg.Names()
	for i, want := range []string{"denoise", "motion", "normalize"} {
		if names[i] != want {
			t.Fatalf("index %d: got %q want %q", i, names[i], want)
		}
	}

	for i := 0; i < reg.Len(); i++ {
		if err := reg.Invoke(context.Background(), i); err != nil {
			t.Fatalf("Invoke(%d) failed: %v", i, err)
		}
	}
	if len(order) != 3 || order[0] != "denoise" {
		t.Fatalf("unexpected invocation order: %v", order)
	}
}

func TestStepRegistryRejectsOutOfRange(t *testing.T) {
	def := pipeline.NewDefinition(nil, "T1proc")
	def.AddStep("denoise", "", func(context.Context) error { return nil })
	reg := pipeline.NewStepRegistry(def)

	for _, idx := range []int{-1, 1, 99} {
		if err := reg.Invoke(context.Background(), idx); !errors.Is(err, pipeline.ErrUnknownStepIndex) {
			t.Fatalf("Invoke(%d): expected ErrUnknownStepIndex, got %v", idx, err)
		}
	}
}

func TestStepRegistrySnapshotIsStable(t *testing.T) {
	def := pipeline.NewDefinition(nil, "T1proc")
	def.AddStep("denoise", "", func(context.Context) error { return nil })
	reg := pipeline.NewStepRegistry(def)

	// Steps added after the registry was built do not appear until rebind.
	def.AddStep("late", "", func(context.Context) error { return nil })
	if reg.Len() != 1 {
		t.Fatalf("registry must snapshot at build time, got %d steps", reg.Len())
	}
}
