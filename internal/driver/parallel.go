package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
)

// listHTMLFiles returns every *.html / *.htm file under dir, sorted
// for a deterministic order.
func listHTMLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths resolves the CLI arguments into a flat file list:
// directories are walked, plain files pass through.
func ExpandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		inDir, err := listHTMLFiles(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, inDir...)
	}
	return files, nil
}

// CheckPaths validates every file in parallel. Results come back in
// input order; a file that fails to load yields a result whose bag
// holds a single I/O finding instead of an error for the whole run.
func CheckPaths(ctx context.Context, paths []string, maxDiagnostics, jobs int) (*source.FileSet, []*CheckResult, error) {
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))
	for _, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Register an empty stand-in so the finding still has a
			// real file to point at.
			loadErrors[path] = err
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index, so no mutex.
	results := make([]*CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(maxDiagnostics)
				bag.Add(diag.New(diag.SevError, diag.UnknownCode,
					source.Span{File: fileIDs[path]},
					"failed to load file: "+loadErr.Error()))
				results[i] = &CheckResult{Path: path, Bag: bag}
				return nil
			}

			res := CheckFile(fileSet.Get(fileIDs[path]), maxDiagnostics)
			res.Path = path
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
