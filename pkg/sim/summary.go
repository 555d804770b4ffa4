package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Summary renders a concise textual summary of a job result. Output
// is plain text; the CLI layer applies styling.
func Summary(job *Job) string {
	duration := "N/A"
	if job.StartedAt != nil && job.FinishedAt != nil {
		total := int(job.FinishedAt.Sub(*job.StartedAt).Seconds())
		duration = fmt.Sprintf("%dm %ds", total/60, total%60)
	}

	sizeKB := float64(job.OutputSizeBytes) / 1024
	size := fmt.Sprintf("%.1f KB", sizeKB)
	if sizeKB >= 1024 {
		size = fmt.Sprintf("%.2f MB", sizeKB/1024)
	}

	files := make([]string, 0, len(job.DownloadURLs))
	for name := range job.DownloadURLs {
		files = append(files, name)
	}
	sort.Strings(files)

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s\n", "Job:", job.Name)
	fmt.Fprintf(&b, "%-12s %s (exit %d)\n", "Status:", job.Status, job.ExitCode)
	fmt.Fprintf(&b, "%-12s %s\n", "Duration:", duration)
	fmt.Fprintf(&b, "%-12s %d CPU / %d GB\n", "Resources:", job.RequestedCPU, job.RequestedMemoryMB/1024)
	fmt.Fprintf(&b, "%-12s %s\n", "Output:", size)
	fmt.Fprintf(&b, "%-12s %d files\n", "Files:", len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "             - %s\n", f)
	}
	return b.String()
}
