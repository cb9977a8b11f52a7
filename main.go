// Command rmscribe writes text in synthesized handwriting and renders it
// as SVG, PDF or PNG.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/juruen/rmscribe/config"
	"github.com/juruen/rmscribe/encoding/rm"
	"github.com/juruen/rmscribe/hand"
	"github.com/juruen/rmscribe/log"
	"github.com/juruen/rmscribe/render"
	"github.com/juruen/rmscribe/sampler"
	"github.com/juruen/rmscribe/styles"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var version = "dev"

const usage = `usage: rmscribe <command> [flags] [args]

commands:
  write         write lines of text to an image
  demo          render every job of a demo file
  serve         serve the pipeline over HTTP
  import-style  add a handwritten reMarkable page to the style library
  styles        list the style library
  version       print the version
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.InitLog()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "write":
		err = writeCmd(ctx, rest)
	case "demo":
		err = demoCmd(ctx, rest)
	case "serve":
		err = serveCmd(ctx, rest)
	case "import-style":
		err = importStyleCmd(rest)
	case "styles":
		err = stylesCmd(rest, os.Stdout)
	case "version":
		fmt.Printf("rmscribe version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	if err == pflag.ErrHelp {
		return 0
	}
	if err != nil {
		log.Error.Println(err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newHand wires the pipeline from the configuration.
func newHand(cfg config.Config) (*hand.Hand, *styles.Library, error) {
	lib, err := styles.Open(cfg.Styles)
	if err != nil {
		return nil, nil, err
	}
	client := sampler.NewClient(cfg.Model.Endpoint, cfg.Model.Token, cfg.Model.HMACKey, cfg.Model.MaxInFlight)
	s := sampler.New(client, cfg.Model.Timeout)
	opts := render.Options{Align: cfg.Render.Align, Denoise: cfg.Render.Denoise}
	return hand.New(lib, s, opts), lib, nil
}

// readLines reads text from a file, or stdin when path is "-".
func readLines(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func writeCmd(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("write", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	output := fs.StringP("output", "o", "out.svg", "output file; the extension selects svg, pdf or png")
	input := fs.StringP("input", "i", "", "read lines from a file, - for stdin")
	bias := fs.Float64P("bias", "b", -1, "bias for every line; higher is neater (default 0.5)")
	style := fs.IntP("style", "s", -1, "style id for every line; negative writes unprimed")
	perLine := fs.IntSlice("styles", nil, "style id per line, comma separated")
	noAlign := fs.Bool("no-align", false, "don't straighten the baseline")
	noDenoise := fs.Bool("no-denoise", false, "don't smooth the strokes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *noAlign {
		cfg.Render.Align = false
	}
	if *noDenoise {
		cfg.Render.Denoise = false
	}

	lines := fs.Args()
	if *input != "" {
		if lines, err = readLines(*input); err != nil {
			return errors.Wrap(err, "can't read input")
		}
	}
	if len(lines) == 0 {
		return errors.New("no text provided")
	}

	job := hand.Job{Lines: lines, Output: *output}
	if *bias >= 0 {
		job.Biases = make([]float64, len(lines))
		for i := range job.Biases {
			job.Biases[i] = *bias
		}
	}
	switch {
	case len(*perLine) > 0:
		job.Styles = *perLine
	case *style >= 0:
		job.Styles = make([]int, len(lines))
		for i := range job.Styles {
			job.Styles[i] = *style
		}
	}

	h, _, err := newHand(cfg)
	if err != nil {
		return err
	}
	return h.Write(ctx, job)
}

func demoCmd(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	dir := fs.StringP("output-dir", "o", "img", "directory for jobs without an explicit output")
	parallelism := fs.IntP("jobs", "j", 2, "jobs to run at once")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: rmscribe demo [flags] <demo.yaml>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	jobs, err := hand.LoadDemo(fs.Arg(0), *dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return err
	}

	h, _, err := newHand(cfg)
	if err != nil {
		return err
	}
	return hand.RunDemo(ctx, h, jobs, *parallelism)
}

func serveCmd(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	listen := fs.StringP("listen", "l", "", "address to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	h, lib, err := newHand(cfg)
	if err != nil {
		return err
	}
	return NewApiServer(h, lib).Serve(ctx, cfg.Listen)
}

func importStyleCmd(args []string) error {
	fs := pflag.NewFlagSet("import-style", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	id := fs.Int("id", -1, "id of the new style")
	text := fs.StringP("text", "t", "", "what the page says")
	force := fs.BoolP("force", "f", false, "replace an existing style")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *id < 0 || *text == "" {
		return errors.New("usage: rmscribe import-style --id <n> --text <transcription> <page.rm>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	lib, err := styles.Open(cfg.Styles)
	if err != nil {
		return err
	}
	if _, err := lib.Load(*id); err == nil && !*force {
		return fmt.Errorf("style %d already exists", *id)
	}

	data, err := ioutil.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var page rm.Rm
	if err := page.UnmarshalBinary(data); err != nil {
		return errors.Wrapf(err, "can't parse %s", fs.Arg(0))
	}

	st, err := styles.FromPage(&page, *id, *text)
	if err != nil {
		return err
	}
	lib.Add(st)
	if err := lib.Save(); err != nil {
		return err
	}
	log.Info.Printf("imported style %d with %d points into %s", st.ID, len(st.Strokes), lib.Dir())
	return nil
}

func stylesCmd(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("styles", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	lib, err := styles.Open(cfg.Styles)
	if err != nil {
		return err
	}
	return listStyles(w, lib)
}

func listStyles(w io.Writer, lib *styles.Library) error {
	for _, id := range lib.IDs() {
		st, err := lib.Load(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%4d  %5d points  %s\n", st.ID, len(st.Strokes), strings.TrimSpace(st.Transcription))
	}
	return nil
}
