// Package main provides the CLI entry point for quotecopy.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/config"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/formfile"
	"go.uber.org/zap"
)

// app holds the flags and the state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string

	formPath   string
	outputPath string
	engine     string
	number     int
	force      bool
	setNumber  int
	writePath  string

	cfg  *config.AppConfig
	log  *zap.Logger
	opts quotecopy.Options
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "quotecopy",
		Short: "Create numbered copies of a quote spreadsheet",
		Long: `quotecopy fills a copy of a quote template with client data and line
items, numbers it, keeps its pictures and exports a PDF when possible.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.toml (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	loadCmd := &cobra.Command{
		Use:   "load [template.xlsx]",
		Short: "Read a template into a form document and reconcile the quote number",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runLoad,
	}
	loadCmd.Flags().StringVarP(&a.outputPath, "output", "o", "", "Form document path (default: stdout)")

	totalCmd := &cobra.Command{
		Use:   "total [form.yaml]",
		Short: "Print the grand total of a form document",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTotal,
	}

	createCmd := &cobra.Command{
		Use:   "create [template.xlsx]",
		Short: "Create the numbered copy and its PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runCreate,
	}
	createCmd.Flags().StringVar(&a.formPath, "form", "", "Form document produced by load (default: template values)")
	createCmd.Flags().StringVar(&a.engine, "export", "", "Export engine: auto, office, native, none")
	createCmd.Flags().IntVar(&a.number, "number", 0, "Quote number to use instead of the reconciled one")
	createCmd.Flags().BoolVar(&a.force, "force", false, "Replace an existing copy with the same name")

	numberCmd := &cobra.Command{
		Use:   "number",
		Short: "Show or set the next quote number",
		Args:  cobra.NoArgs,
		RunE:  a.runNumber,
	}
	numberCmd.Flags().IntVar(&a.setNumber, "set", 0, "Persist this value as the next number")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  a.runConfig,
	}
	configCmd.Flags().StringVar(&a.writePath, "write", "", "Also write the configuration to this path")

	rootCmd.AddCommand(loadCmd, totalCmd, createCmd, numberCmd, configCmd)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, info, err := config.LoadWithInfo(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.engine != "" {
		cfg.Export.Engine = a.engine
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", info.Path, err)
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Log)
	a.log.Debug("config loaded", zap.String("path", info.Path), zap.Bool("found", info.Found))

	opts, err := quotecopy.OptionsFromConfig(cfg, a.log)
	if err != nil {
		return err
	}
	opts.Overwrite = a.force
	a.opts = opts
	return nil
}

func (a *app) runLoad(cmd *cobra.Command, args []string) error {
	sel := quotecopy.SelectionFromPath(args[0])
	res, err := quotecopy.Load(sel, a.opts)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	doc := formfile.NewDocument(res.Form)
	doc.Template = sel.Path()
	doc.Label = res.Label

	if a.outputPath != "" {
		if err := formfile.Write(a.outputPath, doc); err != nil {
			return fmt.Errorf("failed to write form: %w", err)
		}
	} else {
		data, err := doc.Marshal()
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		cmd.OutOrStdout().Write(data)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Template: %s\nQuote number: %d\nPictures: %d\nTotal: %s\n",
		sel.File, res.Form.Number, res.Pictures, res.Total)
	return nil
}

func (a *app) readForm(path string) (*formfile.Document, error) {
	doc, err := formfile.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read form %s: %w", path, err)
	}
	return doc, nil
}

func (a *app) runTotal(cmd *cobra.Command, args []string) error {
	doc, err := a.readForm(args[0])
	if err != nil {
		return err
	}
	form, err := doc.Form(a.cfg.Layout)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), quotecopy.Preview(form, a.log))
	return nil
}

func (a *app) runCreate(cmd *cobra.Command, args []string) error {
	sel := quotecopy.SelectionFromPath(args[0])

	var doc *formfile.Document
	if a.formPath != "" {
		d, err := a.readForm(a.formPath)
		if err != nil {
			return err
		}
		doc = d
	} else {
		res, err := quotecopy.Load(sel, a.opts)
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
		doc = formfile.NewDocument(res.Form)
	}

	form, err := doc.Form(a.cfg.Layout)
	if err != nil {
		return err
	}
	if a.number > 0 {
		form.Number = a.number
	}

	res, err := quotecopy.Create(context.Background(), sel, form, a.opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Copy created: %s\n", filepath.Base(res.OutputPath))
	if res.PDFPath != "" {
		fmt.Fprintf(out, "PDF: %s\n", filepath.Base(res.PDFPath))
	} else {
		fmt.Fprintln(out, "PDF not generated: export it manually from the spreadsheet application")
	}
	fmt.Fprintf(out, "Folder: %s\nQuote number used: %d | Next: %d\nTotal: %s\n",
		sel.Dir, res.Number, res.NextNumber, res.Total)
	return nil
}

func (a *app) runNumber(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("set") {
		if err := a.opts.Numberer.Set(a.setNumber); err != nil {
			return err
		}
	}
	n, err := a.opts.Numberer.Peek()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return err
	}
	cmd.OutOrStdout().Write(data)

	if a.writePath != "" {
		if err := config.Save(a.writePath, a.cfg); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	if a.opts.Exporter == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "pdf export: unavailable")
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "pdf export: %s\n", a.opts.Exporter.Name())
	}
	return nil
}
