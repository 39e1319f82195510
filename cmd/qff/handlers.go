package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/sjc08/QuickFileFinder/internal/filesystem"
	"github.com/sjc08/QuickFileFinder/internal/pathfilter"
	"github.com/sjc08/QuickFileFinder/internal/search"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

var (
	fileSystem    *filesystem.Service
	searchService *search.Service
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve search over a directory as an MCP tool on stdio",
		Long: `serve runs a Model Context Protocol server on stdin/stdout with a single
"search" tool. Searches are confined to the given directory, which
defaults to the working directory.`,
		Example: `qff serve ~/projects`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	root, err := resolveRoot(args, 0)
	if err != nil {
		return err
	}

	// Initialize services
	pf := pathfilter.New(&cfg.PathFilter)
	fileSystem = filesystem.New(root, pf)
	if err := fileSystem.CheckRoot(); err != nil {
		return err
	}
	searchService = search.New(pf)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "qff",
		Version: version,
	}, nil)

	registerTools(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

func handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	dir, err := fileSystem.ResolvePath(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}

	report, err := searchService.Run(ctx, types.SearchRequest{
		Text:          input.Text,
		Root:          dir,
		CaseSensitive: input.CaseSensitive,
	}, search.Options{})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}

	return nil, toSearchOutput(report, fileSystem), nil
}

// toSearchOutput groups a report and rewrites paths relative to the served root.
func toSearchOutput(report types.SearchReport, fsys *filesystem.Service) SearchOutput {
	out := SearchOutput{
		Total:    report.Total(),
		Groups:   []SearchGroup{},
		Warnings: report.Warnings,
	}
	for _, g := range types.GroupByKind(report.Records) {
		group := SearchGroup{Kind: string(g.Kind)}
		for _, r := range g.Records {
			group.Records = append(group.Records, SearchRecord{
				Path:   fsys.RelativePath(r.Path),
				Detail: r.Detail,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}
