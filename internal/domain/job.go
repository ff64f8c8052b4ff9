package domain

import (
	"fmt"
	"path/filepath"
)

// NormalizationJob re-encodes one input into the run workspace.
type NormalizationJob struct {
	Index        int
	SourcePath   string
	TargetPath   string
	ProgressPath string
	Profile      TargetProfile
	Duration     float64
}

// NewNormalizationJobs derives one job per input. Target names depend only on
// the input index so they never collide inside one workspace.
func NewNormalizationJobs(files []*MediaFile, workDir string, profile TargetProfile) []NormalizationJob {
	jobs := make([]NormalizationJob, len(files))
	for i, f := range files {
		jobs[i] = NormalizationJob{
			Index:        i,
			SourcePath:   f.Path,
			TargetPath:   filepath.Join(workDir, NormalizedName(i, profile.Container)),
			ProgressPath: filepath.Join(workDir, fmt.Sprintf("progress_norm_%03d.txt", i)),
			Profile:      profile,
			Duration:     f.Duration(),
		}
	}
	return jobs
}

func NormalizedName(index int, container string) string {
	return fmt.Sprintf("norm_%03d.%s", index, container)
}

// MergePlan lists normalized outputs in the user's import order.
type MergePlan struct {
	NormalizedPaths []string
	Destination     string
	ManifestPath    string
	ProgressPath    string
}

func NewMergePlan(normalized []string, destination, workDir string, inputCount int) (MergePlan, error) {
	if len(normalized) != inputCount {
		return MergePlan{}, fmt.Errorf("merge plan has %d normalized files for %d inputs", len(normalized), inputCount)
	}
	return MergePlan{
		NormalizedPaths: normalized,
		Destination:     destination,
		ManifestPath:    filepath.Join(workDir, "concat.txt"),
		ProgressPath:    filepath.Join(workDir, "progress_concat.txt"),
	}, nil
}
