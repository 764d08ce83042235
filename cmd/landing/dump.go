package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/sections"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Fetch content and print the resolved sections as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig(viper.GetViper())
		client := cms.NewClient(cfg.Content, cms.WithLogger(logger), cms.WithRevalidate(-1))
		return dump(cmd.Context(), client, cmd.OutOrStdout(), time.Now())
	},
}

type droppedModule struct {
	Index  int    `yaml:"index"`
	Layout string `yaml:"layout"`
}

type sectionDump struct {
	Kind    string           `yaml:"kind"`
	Section sections.Section `yaml:"section"`
}

type pageDump struct {
	Source   *cms.Endpoints  `yaml:"source,omitempty"`
	Header   sections.Header `yaml:"header"`
	Sections []sectionDump   `yaml:"sections"`
	Dropped  []droppedModule `yaml:"dropped,omitempty"`
	Footer   sections.Footer `yaml:"footer"`
}

type contentSource interface {
	LandingData(ctx context.Context) cms.LandingData
}

// endpointSource is implemented by content sources that read from WordPress.
type endpointSource interface {
	Endpoints() cms.Endpoints
}

func dump(ctx context.Context, src contentSource, w io.Writer, now time.Time) error {
	data := src.LandingData(ctx)
	out := pageDump{
		Header: sections.BuildHeader(data.Menus, data.Options),
		Footer: sections.BuildFooter(data.Menus, data.Options, now),
	}
	if es, ok := src.(endpointSource); ok {
		endpoints := es.Endpoints()
		out.Source = &endpoints
	}
	secs := sections.Build(data.Modules, sections.WithDiagnostics(func(index int, layout string) {
		out.Dropped = append(out.Dropped, droppedModule{Index: index, Layout: layout})
	}))
	for _, s := range secs {
		out.Sections = append(out.Sections, sectionDump{Kind: s.Kind(), Section: s})
	}
	logger.Debug("Resolved sections", zap.Int("sections", len(secs)), zap.Int("dropped", len(out.Dropped)))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	return enc.Close()
}
