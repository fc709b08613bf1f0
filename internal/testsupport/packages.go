package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"pipet/internal/pipeline"
	"pipet/internal/plugin"
	"pipet/internal/proc"
)

// DenoisePackage builds a minimal "T1proc" package with a single "denoise"
// step. Each invocation increments calls (when non-nil) and submits one job
// per subject parameter that writes an output file under 010_denoise.
func DenoisePackage(calls *atomic.Int64) plugin.Package {
	return plugin.Package{
		Title: "T1proc",
		Doc:   "Anatomical preprocessing test package.",
		Build: func(iface *proc.Interface) (*pipeline.Definition, error) {
			def := pipeline.NewDefinition(iface, "T1proc")
			def.Params().Declare("anat", "anat")
			def.Params().Declare("func", "func")
			def.Params().Declare("tr", 2)

			def.AddStep("denoise", "Remove scanner noise from functional images.", func(ctx context.Context) error {
				if calls != nil {
					calls.Add(1)
				}
				dir, err := iface.StepOutputDir("010", "denoise")
				if err != nil {
					return err
				}
				subject := def.Params().String("func")
				iface.Submit("denoise", proc.JobSpec{
					Name: subject,
					Run: func(context.Context) error {
						target := filepath.Join(dir, subject)
						if err := os.MkdirAll(target, 0o755); err != nil {
							return err
						}
						name := fmt.Sprintf("%s_denoised.nii.gz", subject)
						return os.WriteFile(filepath.Join(target, name), []byte("ok"), 0o644)
					},
				})
				return nil
			})
			return def, nil
		},
	}
}

// FailingPackage builds a package whose only step always fails.
func FailingPackage(title string) plugin.Package {
	return plugin.Package{
		Title: title,
		Build: func(iface *proc.Interface) (*pipeline.Definition, error) {
			def := pipeline.NewDefinition(iface, title)
			def.AddStep("broken", "", func(context.Context) error {
				return fmt.Errorf("step failure")
			})
			return def, nil
		},
	}
}
