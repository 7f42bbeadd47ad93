package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lattice/internal/driver"
	"lattice/internal/fixture"
	"lattice/internal/version"
)

var (
	dumpManifestPath string
	dumpOut          string
	dumpUseCache     bool
)

func init() {
	dumpCmd.Flags().StringVar(&dumpManifestPath, "manifest", "", "path to lattice.toml")
	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "output directory (overrides manifest)")
	dumpCmd.Flags().BoolVar(&dumpUseCache, "cache", false, "reuse cached renders")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [fixture...]",
	Short: "Render IR modules to their textual form",
	Long: `Dump renders the built-in IR corpus (or the named subset) into
one .ir file per module. Without --out the text goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := loadManifest(dumpManifestPath)
		if err != nil {
			return err
		}

		out := dumpOut
		if out == "" {
			out = manifest.Dump.Out
		}
		useCache := dumpUseCache || manifest.Dump.Cache

		names := args
		if len(names) == 0 {
			names = manifest.Dump.Fixtures
		}
		fixtures, err := selectFixtures(names)
		if err != nil {
			return err
		}

		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs == 0 {
			jobs = manifest.Dump.Jobs
		}

		var cache *driver.DiskCache
		if useCache {
			cache, err = driver.OpenDiskCache("lattice")
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
		}

		results, err := renderWithCache(cmd, fixtures, cache, driver.Options{Jobs: jobs})
		if err != nil {
			return err
		}

		if out == "" {
			for _, r := range results {
				fmt.Fprint(cmd.OutOrStdout(), r.Text)
			}
			return nil
		}

		if err := ensureDir(out); err != nil {
			return err
		}
		for _, r := range results {
			path := filepath.Join(out, r.Name+".ir")
			if err := os.WriteFile(path, []byte(r.Text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return nil
	},
}

func selectFixtures(names []string) ([]fixture.Fixture, error) {
	if len(names) == 0 {
		return fixture.All(), nil
	}
	out := make([]fixture.Fixture, 0, len(names))
	for _, name := range names {
		fx, ok := fixture.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown fixture %q", name)
		}
		out = append(out, fx)
	}
	return out, nil
}

// renderWithCache serves hits from the disk cache and renders the rest,
// writing fresh renders back. A nil cache renders everything.
func renderWithCache(cmd *cobra.Command, fixtures []fixture.Fixture, cache *driver.DiskCache, opts driver.Options) ([]driver.RenderResult, error) {
	if cache == nil {
		return driver.RenderAll(cmd.Context(), fixtures, opts)
	}

	results := make([]driver.RenderResult, len(fixtures))
	var misses []fixture.Fixture
	var missIdx []int

	for i, fx := range fixtures {
		var payload driver.CachePayload
		ok, err := cache.Get(driver.KeyFor(fx.Name, version.Version), &payload)
		if err != nil {
			return nil, fmt.Errorf("cache get %s: %w", fx.Name, err)
		}
		if ok {
			results[i] = driver.RenderResult{Name: fx.Name, Text: payload.Text}
			continue
		}
		misses = append(misses, fx)
		missIdx = append(missIdx, i)
	}

	if len(misses) == 0 {
		return results, nil
	}

	fresh, err := driver.RenderAll(cmd.Context(), misses, opts)
	if err != nil {
		return nil, err
	}
	for j, r := range fresh {
		results[missIdx[j]] = r
		payload := driver.CachePayload{Name: r.Name, Text: r.Text}
		if err := cache.Put(driver.KeyFor(r.Name, version.Version), &payload); err != nil {
			return nil, fmt.Errorf("cache put %s: %w", r.Name, err)
		}
	}
	return results, nil
}
