package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/heiftools/heicbridge/cli/config"
	"github.com/heiftools/heicbridge/cli/render"
	"github.com/heiftools/heicbridge/upload"
	"github.com/heiftools/heicbridge/widgetsync"
)

// InspectCommand returns the inspect command with subcommands.
// Inspect reports the bridge's effective configuration and the host
// server's current state without changing anything.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect effective configuration and host server state",
		Subcommands: []*cli.Command{
			inspectConfigCommand(),
			inspectFormatsCommand(),
			inspectCandidatesCommand(),
		},
	}
}

// ConfigView is the rendered shape of the effective configuration.
type ConfigView struct {
	BaseURL     string   `json:"base_url"`
	Listen      string   `json:"listen"`
	Extensions  []string `json:"extensions"`
	MIMETypes   []string `json:"mime_types"`
	UploadPath  string   `json:"upload_path"`
	PreviewPath string   `json:"preview_path"`
	ViewPath    string   `json:"view_path"`
	NodeType    string   `json:"node_type"`
	WidgetName  string   `json:"widget_name"`
}

func inspectConfigCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Show the effective configuration",
		Flags:  ReadOnlyFlags(),
		Action: inspectConfigAction,
	}
}

func inspectConfigAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	return r.Render(configView(cfg))
}

func configView(cfg *config.Config) ConfigView {
	classifier := cfg.Classifier()
	rewriter := cfg.Rewriter()
	sync := cfg.SyncConfig()
	return ConfigView{
		BaseURL:     cfg.Server.BaseURL,
		Listen:      cfg.Server.Listen,
		Extensions:  classifier.Extensions(),
		MIMETypes:   classifier.MIMETypes(),
		UploadPath:  effectiveUploadPath(cfg),
		PreviewPath: rewriter.PreviewPath(),
		ViewPath:    rewriter.ViewPath(),
		NodeType:    effectiveNodeType(sync),
		WidgetName:  effectiveWidgetName(sync),
	}
}

func effectiveUploadPath(cfg *config.Config) string {
	if cfg.Upload.Path != "" {
		return cfg.Upload.Path
	}
	return upload.DefaultUploadPath
}

func effectiveNodeType(cfg widgetsync.Config) string {
	if cfg.NodeType != "" {
		return cfg.NodeType
	}
	return widgetsync.DefaultNodeType
}

func effectiveWidgetName(cfg widgetsync.Config) string {
	if cfg.WidgetName != "" {
		return cfg.WidgetName
	}
	return widgetsync.DefaultWidgetName
}

// FormatsView is the rendered shape of the unsupported-format set.
type FormatsView struct {
	Extensions []string `json:"extensions"`
	MIMETypes  []string `json:"mime_types"`
}

func inspectFormatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "formats",
		Usage:  "Show the unsupported-format set the bridge reroutes",
		Flags:  ReadOnlyFlags(),
		Action: inspectFormatsAction,
	}
}

func inspectFormatsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	classifier := cfg.Classifier()
	return r.Render(FormatsView{
		Extensions: classifier.Extensions(),
		MIMETypes:  classifier.MIMETypes(),
	})
}

// CandidatesView is the rendered shape of a node type's image candidates.
type CandidatesView struct {
	NodeType   string   `json:"node_type"`
	Candidates []string `json:"candidates"`
}

func inspectCandidatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "candidates",
		Usage: "List the host server's image candidates for the node type",
		Flags: append(ReadOnlyFlags(), &cli.StringFlag{
			Name:  "node-type",
			Usage: "Node type to query (defaults to the configured type)",
		}),
		Action: inspectCandidatesAction,
	}
}

func inspectCandidatesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	nodeType := c.String("node-type")
	if nodeType == "" {
		nodeType = effectiveNodeType(cfg.SyncConfig())
	}

	client, err := cfg.UploadClient()
	if err != nil {
		return err
	}
	defer client.Close()

	info, err := client.ObjectInfo(c.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch object info: %w", err)
	}

	candidates := info.ImageCandidates(nodeType)
	if candidates == nil {
		return cli.Exit(fmt.Sprintf("no image candidates for node type %q", nodeType), 1)
	}

	return r.Render(CandidatesView{
		NodeType:   nodeType,
		Candidates: candidates,
	})
}
