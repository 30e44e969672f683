package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(of HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: of}).Error())
	}
}

type helpCmd struct {
	r    *root
	args []string
}

// Run prints the help of the named subcommand, or the overview.
func (h *helpCmd) Run() error {
	var (
		of  HelpData = h.r
		err error
	)
	if len(h.args) > 0 {
		switch name := h.args[0]; name {
		case "draw":
			of, err = parseDrawCmd(nil, h.r)
		case "render":
			of, err = parseRenderCmd(nil, h.r)
		case "export":
			of, err = parseExportCmd(nil, h.r)
		case "serve":
			of, err = parseServeCmd(nil, h.r)
		case "config":
			of, err = parseConfigCmd(nil, h.r)
		case "version":
			of = &versionCmd{r: h.r}
		default:
			return fmt.Errorf("no help for %q", name)
		}
		if err != nil {
			return err
		}
	}
	help, err := (&UsageError{of: of}).renderHelp()
	if err != nil {
		return err
	}
	fmt.Fprint(h.r.out(), help)
	return nil
}

func (r *root) Template() string {
	return "root.txt"
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func (c *renderCmd) Template() string {
	return "render.txt"
}

func (c *exportCmd) Template() string {
	return "export.txt"
}

func (s *serveCmd) Template() string {
	return "serve.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}
