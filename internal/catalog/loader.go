package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/rspecgen/internal/ctxlog"
	"github.com/vk/rspecgen/internal/fsutil"
	"github.com/vk/rspecgen/internal/schema"
)

//go:embed profiles/*.hcl
var builtin embed.FS

// LoadError lists every problem found in a catalog.
type LoadError struct {
	Problems []string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog validation failed:\n- %s", strings.Join(e.Problems, "\n- "))
}

// source is one catalog file's name and contents.
type source struct {
	name string
	src  []byte
}

// Default loads the catalog embedded in the binary.
func Default(ctx context.Context) (*Catalog, error) {
	names, err := fs.Glob(builtin, "profiles/*.hcl")
	if err != nil {
		return nil, fmt.Errorf("listing built-in catalog: %w", err)
	}

	sources := make([]source, 0, len(names))
	for _, name := range names {
		src, err := builtin.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading built-in catalog: %w", err)
		}
		sources = append(sources, source{name: name, src: src})
	}
	return build(ctx, sources)
}

// Load reads catalog files from the given paths. Directories are searched
// recursively for .hcl files; files are read regardless of extension.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog files: %w", err)
	}

	sources := make([]source, 0, len(files))
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		sources = append(sources, source{name: f, src: src})
	}
	return build(ctx, sources)
}

// Parse builds a catalog from a single in-memory source.
func Parse(ctx context.Context, filename string, src []byte) (*Catalog, error) {
	return build(ctx, []source{{name: filename, src: src}})
}

func build(ctx context.Context, sources []source) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loader started.", "file_count", len(sources))

	c := &Catalog{byName: make(map[string]*Profile)}
	var problems []string
	parser := hclparse.NewParser()

	for _, s := range sources {
		file, diags := parser.ParseHCL(s.src, s.name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse catalog file %s: %w", s.name, diags)
		}

		var root schema.CatalogFile
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode catalog file %s: %w", s.name, diags)
		}

		for _, sp := range root.Profiles {
			if _, dup := c.byName[sp.Name]; dup {
				problems = append(problems, fmt.Sprintf("%s: profile %q is already defined", s.name, sp.Name))
				continue
			}
			p, errs := translateProfile(s.name, sp)
			if len(errs) > 0 {
				problems = append(problems, errs...)
				continue
			}
			c.byName[p.Name] = p
			c.profiles = append(c.profiles, p)
			logger.Debug("Profile loaded.", "profile", p.Name, "strategy", p.Strategy.Kind(), "file", s.name)
		}
	}

	if len(problems) > 0 {
		return nil, &LoadError{Problems: problems}
	}
	if len(c.profiles) == 0 {
		return nil, &LoadError{Problems: []string{"catalog defines no profiles"}}
	}

	logger.Debug("Catalog loading complete.", "profiles", c.Names())
	return c, nil
}
