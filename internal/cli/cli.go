package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/service"
)

// ErrUsage is returned when the command line cannot be understood.
var ErrUsage = errors.New("usage error")

const usage = `Usage: sd-cli <command> [flags]

Commands:
  list [--page N] [--page-size N] [--query TERM]
  summary
  get <id>
  add --file product.json   (use - for stdin)
  status <id> <pending|delivered|cancelled>
  delete <id>
`

// Runner executes one CLI command against a product service.
type Runner struct {
	svc             service.ProductService
	stdin           io.Reader
	stdout          io.Writer
	defaultPageSize int
}

func NewRunner(svc service.ProductService, stdin io.Reader, stdout io.Writer, defaultPageSize int) *Runner {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &Runner{
		svc:             svc,
		stdin:           stdin,
		stdout:          stdout,
		defaultPageSize: defaultPageSize,
	}
}

// Usage returns the help text.
func Usage() string {
	return usage
}

// Run parses args (without the program name) and runs the command they name.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return r.list(ctx, rest)
	case "summary":
		return r.summary(ctx, rest)
	case "get":
		return r.get(ctx, rest)
	case "add":
		return r.add(ctx, rest)
	case "status":
		return r.status(ctx, rest)
	case "delete":
		return r.delete(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

type listOutput struct {
	Items    []model.Product `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func (r *Runner) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	page := fs.IntP("page", "p", 1, "page number, starting at 1")
	pageSize := fs.IntP("page-size", "s", r.defaultPageSize, "products per page")
	term := fs.StringP("query", "q", "", "free-text filter")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	res, err := r.svc.ListProducts(ctx, service.ListProductsParams{
		Search:   *term,
		Page:     *page,
		PageSize: *pageSize,
	})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	return r.print(listOutput{
		Items:    res.Items,
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	})
}

func (r *Runner) summary(ctx context.Context, args []string) error {
	if err := parse(newFlagSet("summary"), args, 0); err != nil {
		return err
	}

	summary, err := r.svc.Summary(ctx)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return r.print(summary)
}

func (r *Runner) get(ctx context.Context, args []string) error {
	fs := newFlagSet("get")
	if err := parse(fs, args, 1); err != nil {
		return err
	}

	product, err := r.svc.GetProduct(ctx, fs.Arg(0))
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	return r.print(product)
}

func (r *Runner) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	file := fs.StringP("file", "f", "", "JSON file holding the product, - for stdin")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: add requires --file", ErrUsage)
	}

	var src io.Reader = r.stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("open product file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		src = f
	}

	var input service.ProductInput
	if err := json.NewDecoder(src).Decode(&input); err != nil {
		return fmt.Errorf("decode product: %w", err)
	}

	product, err := r.svc.CreateProduct(ctx, input)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return r.print(product)
}

func (r *Runner) status(ctx context.Context, args []string) error {
	fs := newFlagSet("status")
	if err := parse(fs, args, 2); err != nil {
		return err
	}

	status := model.ProductStatus(strings.ToLower(fs.Arg(1)))
	product, err := r.svc.PatchProduct(ctx, fs.Arg(0), service.ProductPatchInput{Status: &status})
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return r.print(product)
}

func (r *Runner) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	if err := parse(fs, args, 1); err != nil {
		return err
	}

	if err := r.svc.DeleteProduct(ctx, fs.Arg(0)); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	_, err := fmt.Fprintf(r.stdout, "deleted %s\n", fs.Arg(0))
	return err
}

func (r *Runner) print(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses args and requires exactly nargs positional arguments.
func parse(fs *pflag.FlagSet, args []string, nargs int) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() != nargs {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrUsage, fs.Name(), nargs, fs.NArg())
	}
	return nil
}
