package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
	"github.com/hostwatch/diskwatch/internal/tui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "diskwatch-client",
	Short: "diskwatch-client watches a diskwatchd daemon's live disk inventory",
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("addr", "[::1]:50051", "diskwatchd gRPC address")
	rootCmd.Flags().String("filter", "", "Optional filter passed to DiskListAndWatch")
}

func run(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	filter, _ := cmd.Flags().GetString("filter")

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	client := apiproto.NewApiClient(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := client.DiskListAndWatch(ctx, &apiproto.DiskListAndWatchRequest{Filter: filter})
	if err != nil {
		return fmt.Errorf("open DiskListAndWatch stream: %w", err)
	}

	model := tui.New(addr, stream, cancel)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
