package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfell/sgforge/pkg/sim"
)

var (
	simServerURL string
	simJobName   string
	simSolver    string
	simCPU       int
	simMemoryMB  int
	simListen    string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Upload and inspect simulation jobs",
}

var simUploadCmd = &cobra.Command{
	Use:   "upload <input-dir>",
	Short: "Zip a simulation input directory and upload it as a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", args[0])
		}
		def := sim.JobDefinition{
			Name:              simJobName,
			Solver:            simSolver,
			RequestedCPU:      simCPU,
			RequestedMemoryMB: simMemoryMB,
		}
		client := sim.NewHTTPClient(simServerURL, logger)
		pre, err := sim.UploadDir(cmd.Context(), client, args[0], def)
		if err != nil {
			return err
		}
		fmt.Printf("job %s created (%s)\n", pre.ID, pre.Status)
		return nil
	},
}

var simSummaryCmd = &cobra.Command{
	Use:   "summary <job-id>",
	Short: "Print a human-readable summary of a finished job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", args[0], err)
		}
		client := sim.NewHTTPClient(simServerURL, logger)
		job, err := client.GetJob(cmd.Context(), id)
		if err != nil {
			return err
		}
		summary := sim.Summary(job)
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		fmt.Println(style.Render(summary))
		return nil
	},
}

var simServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local mock job service for development",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := sim.NewServer(logger)
		logger.Info("mock job service listening", zap.String("addr", simListen))
		fmt.Println("listening on", simListen)
		return http.ListenAndServe(simListen, srv.Router())
	},
}

func init() {
	simCmd.PersistentFlags().StringVar(&simServerURL, "server", "http://localhost:8080", "job service base URL")

	simUploadCmd.Flags().StringVar(&simJobName, "name", "simulation", "job name")
	simUploadCmd.Flags().StringVar(&simSolver, "solver", "elmer", "solver to run")
	simUploadCmd.Flags().IntVar(&simCPU, "cpu", 4, "requested CPU cores")
	simUploadCmd.Flags().IntVar(&simMemoryMB, "memory", 8192, "requested memory in MB")

	simServeCmd.Flags().StringVar(&simListen, "listen", ":8080", "listen address")

	simCmd.AddCommand(simUploadCmd)
	simCmd.AddCommand(simSummaryCmd)
	simCmd.AddCommand(simServeCmd)
}
