package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/mkarman/gradebook/internal/config"
	"github.com/mkarman/gradebook/internal/export"
	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
	"github.com/mkarman/gradebook/internal/storage"
	"github.com/mkarman/gradebook/internal/tui"
	"github.com/mkarman/gradebook/pkg/version"
)

func main() {
	fileFlag := flag.String("file", "", "Roster file (overrides data_file from config)")
	flag.StringVar(fileFlag, "f", "", "Roster file (overrides data_file from config)")
	configFlag := flag.String("config", "", "Config file path")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("gradebook %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *fileFlag != "" {
		cfg.DataFile = *fileFlag
	}
	tui.SetTheme(cfg.Theme)

	scheme := grading.DefaultScheme()
	if cfg.GradingScheme != "" {
		scheme, err = resolveScheme(cfg.GradingScheme)
		if err != nil {
			fatal("grading scheme error: %s", err)
		}
	}

	files := storage.NewCSVStore(cfg.DataFile)
	files.Backup = cfg.Backup

	// A broken roster file reports a warning and starts empty rather
	// than refusing to start; individual bad rows are already handled
	// inside Load.
	store := roster.NewStore()
	records, err := files.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.WarnStyle.Render("warning: "+err.Error()))
	} else {
		store.Restore(records)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "list":
			cmdList(store, scheme)
			return
		case "summary":
			cmdSummary(store, scheme)
			return
		case "export":
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			cmdExport(store, scheme, cfg, path)
			return
		case "schemes":
			cmdSchemes(args[1:])
			return
		case "help":
			showHelp()
			return
		default:
			fatal("unknown command: %s (see 'gradebook help')", args[0])
		}
	}

	launchTUI(store, files, scheme, cfg)
}

// launchTUI runs the interactive shell, then saves no matter how the
// session ended. Ctrl+C and SIGTERM both bring Run back here, so the
// roster is written on interrupts too; a failed save is reported but
// never blocks shutdown.
func launchTUI(store *roster.Store, files *storage.CSVStore, scheme *grading.Scheme, cfg *config.Config) {
	m := tui.NewModel(store, files, scheme, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, runErr := p.Run()

	if err := files.Save(store.List()); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("save failed: "+err.Error()))
	} else {
		fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("Saved %d students to %s", store.Len(), files.Path())))
	}

	if runErr != nil {
		fatal("tui error: %v", runErr)
	}
}

func cmdList(store *roster.Store, scheme *grading.Scheme) {
	records := store.List()
	if len(records) == 0 {
		fmt.Println(tui.HelpStyle.Render("No student records."))
		return
	}

	fmt.Println(tui.BannerStyle.Render("  Roster"))
	fmt.Println()
	fmt.Printf("  %s\n", tui.LabelStyle.Render(fmt.Sprintf("%-12s %-22s %-30s %6s  %s", "ID", "NAME", "SUBJECTS", "GPA", "GRADE")))
	for _, r := range records {
		subjects := make([]string, len(r.Marks))
		for i, m := range r.Marks {
			subjects[i] = m.Subject
		}
		fmt.Printf("  %-12s %-22s %-30s %6.2f  %s\n",
			r.ID, r.Name, strings.Join(subjects, ", "), r.GPA, scheme.Letter(r.GPA))
	}
}

func cmdSummary(store *roster.Store, scheme *grading.Scheme) {
	sum, err := store.Summarize(scheme)
	if err != nil {
		fatal("%v", err)
	}

	md := export.SummaryMarkdown(sum)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// resolveScheme loads a grading scheme by config reference: a bare
// name looks in the schemes directory, anything with a path or
// extension is read as a file.
func resolveScheme(ref string) (*grading.Scheme, error) {
	if filepath.Base(ref) == ref && filepath.Ext(ref) == "" {
		return config.LoadNamedScheme(ref)
	}
	return grading.LoadScheme(ref)
}

func cmdSchemes(args []string) {
	if len(args) == 0 {
		names, err := config.ListSchemes()
		if err != nil {
			fatal("could not list schemes: %v", err)
		}
		fmt.Println(tui.LabelStyle.Render("GRADING SCHEMES:"))
		fmt.Println("  default (built-in)")
		for _, n := range names {
			fmt.Println("  " + n)
		}
		return
	}
	if len(args) < 2 {
		fatal("usage: gradebook schemes [show|init|rm] <name>")
	}
	name := args[1]

	switch args[0] {
	case "show":
		s, err := config.LoadNamedScheme(name)
		if err != nil {
			fatal("%v", err)
		}
		printScheme(name, s)
	case "init":
		if err := config.SaveNamedScheme(name, grading.DefaultScheme()); err != nil {
			fatal("could not write scheme: %v", err)
		}
		path, _ := config.SchemePath(name)
		fmt.Println(tui.SuccessStyle.Render("Wrote " + path))
		fmt.Println(tui.HelpStyle.Render("Edit the tiers, then set grading_scheme: " + name))
	case "rm":
		if err := config.DeleteNamedScheme(name); err != nil {
			fatal("%v", err)
		}
		fmt.Println(tui.SuccessStyle.Render("Removed scheme " + name))
	default:
		fatal("unknown schemes command: %s", args[0])
	}
}

func printScheme(name string, s *grading.Scheme) {
	fmt.Println(tui.LabelStyle.Render("SCHEME: ") + tui.ValueStyle.Render(name))
	for _, t := range s.Tiers {
		fmt.Printf("  %s  GPA >= %.2f\n", tui.ValueStyle.Render(t.Letter), t.MinGPA)
	}
	fmt.Printf("  %s  below\n", tui.ValueStyle.Render(s.Fallback))
}

func cmdExport(store *roster.Store, scheme *grading.Scheme, cfg *config.Config, path string) {
	sum, err := store.Summarize(scheme)
	if err != nil {
		fatal("%v", err)
	}
	if path == "" {
		path = export.TimestampedName(cfg.ExportDir, "xlsx")
	}
	if err := export.WriteWorkbook(path, store.List(), sum, scheme); err != nil {
		fatal("export failed: %v", err)
	}
	fmt.Println(tui.SuccessStyle.Render("Exported workbook to " + path))
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("Gradebook") + ` - student grade manager for your terminal

` + tui.LabelStyle.Render("USAGE:") + `
  gradebook [flags]           Start the interactive shell
  gradebook <command> [args]  Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  list                        Print the roster
  summary                     Print the class performance report
  export [path]               Write the roster and report to an xlsx workbook
  schemes [show|init|rm]      Manage named grading schemes
  help                        Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  -f, --file <path>           Roster file (default students.csv, or data_file from config)
  --config <path>             Config file (default searched in ~/.config/gradebook)
  --version                   Show version
  -h, --help                  Show help

` + tui.LabelStyle.Render("CONFIG:") + `
  ` + config.ConfigPath() + `
  Keys: data_file, grading_scheme, export_dir, theme (green|amber|blue), backup
  Environment: GRADEBOOK_DATA_FILE, GRADEBOOK_THEME, ...
`
	fmt.Println(help)
}
