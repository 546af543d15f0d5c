package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

var formatExt = map[ExportFormat]string{
	FormatPNG:    ".png",
	FormatBMP:    ".bmp",
	FormatPython: ".py",
	FormatC:      ".h",
	FormatPDF:    ".pdf",
	FormatTXT:    ".txt",
}

const cliUsage = `usage:
  epdesign                               start the editor
  epdesign export [-format f] [-o out] project.epd
  epdesign watch  [-format f] [-o out] project.epd

formats: png, bmp, python, c, pdf, txt
`

// runCLI handles the non-interactive subcommands and returns the exit code.
func runCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, cliUsage)
		return 2
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "export", "watch":
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, cliUsage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, cliUsage)
		return 2
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "output format (default: from -o extension, else config code_target)")
	out := fs.String("o", "", "output file (default: project name with the format's extension)")
	if err := fs.Parse(rest); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, cliUsage)
		return 2
	}

	config := loadConfig()
	job, err := newExportJob(config, fs.Arg(0), ExportFormat(*format), *out)
	if err != nil {
		fmt.Fprintf(stderr, "epdesign: %v\n", err)
		return 1
	}

	if err := job.run(); err != nil {
		fmt.Fprintf(stderr, "epdesign: %v\n", err)
		if cmd == "export" {
			return 1
		}
	} else {
		fmt.Fprintf(stdout, "wrote %s\n", job.out)
	}
	if cmd == "export" {
		return 0
	}

	if err := job.watch(ctx, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "epdesign: %v\n", err)
		return 1
	}
	return 0
}

type exportJob struct {
	project  string
	out      string
	format   ExportFormat
	config   *Config
	exporter *Exporter
}

func newExportJob(c *Config, project string, format ExportFormat, out string) (*exportJob, error) {
	if format == "" && out != "" {
		f, err := formatForPath(out)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if format == "" {
		format = ExportFormat(c.CodeTarget)
	}
	ext, ok := formatExt[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if out == "" {
		out = strings.TrimSuffix(project, filepath.Ext(project)) + ext
	}
	return &exportJob{
		project:  project,
		out:      out,
		format:   format,
		config:   c,
		exporter: &Exporter{Fonts: NewFontProvider(c.FontPath, c.BoldFontPath), Config: c},
	}, nil
}

func (j *exportJob) run() error {
	s, err := newSessionFromConfig(j.config)
	if err != nil {
		return err
	}
	if err := s.Open(j.project); err != nil {
		return err
	}
	return j.exporter.Export(s, j.format, j.out)
}

// watch re-exports whenever the project file changes. The directory is
// watched rather than the file so editors that save by rename keep working.
func (j *exportJob) watch(ctx context.Context, stdout, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(j.project)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "watching %s (Ctrl+C to stop)\n", j.project)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := j.run(); err != nil {
				logger().Warn("watch export failed", "path", abs, "err", err)
				fmt.Fprintf(stderr, "epdesign: %v\n", err)
				continue
			}
			fmt.Fprintf(stdout, "wrote %s\n", j.out)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger().Warn("watcher error", "err", err)
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
