package library

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/fumen"
)

type document struct {
	name  string
	fumen *fumen.Fumen
}

func (l *Library) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			switch filepath.Ext(file) {
			case ".fumen", ".txt":
			default:
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// readFile returns every document in file along with the line it was found
// on. Blank lines and lines starting with # are skipped, as is anything
// before the header so URLs can be used as-is.
func (l *Library) readFile(file string) ([]string, []int, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var data []string
	var lines []int

	s := bufio.NewScanner(f)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		i := strings.Index(line, fumen.Header)
		if i < 0 {
			l.logger.Printf("No document in \"%s\", line %d\n", file, n)
			continue
		}

		data = append(data, line[i:])
		lines = append(lines, n)
	}

	return data, lines, s.Err()
}

func (l *Library) decodeWorker(ctx context.Context, base string, in <-chan string) (<-chan document, <-chan error, error) {
	out := make(chan document)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for file := range in {
			data, lines, err := l.readFile(file)
			if err != nil {
				errc <- err
				return
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}
			name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

			for i, s := range data {
				f, err := fumen.Decode(s)
				if err != nil {
					l.logger.Printf("Invalid document in \"%s\", line %d: %v\n", file, lines[i], err)
					continue
				}

				d := document{name: name, fumen: f}
				if len(data) > 1 {
					d.name = fmt.Sprintf("%s#%d", name, i+1)
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, errc, nil
}

func (l *Library) storeWorker(in <-chan document) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for d := range in {
			if err := l.db.Add(d.name, d.fumen); err != nil {
				errc <- err
				return
			}
			l.logger.Printf("Added \"%s\" with %d pages\n", d.name, len(d.fumen.Pages))
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			// Stop the other stages and drain the remaining errors
			cancel()
			for range errc {
			}
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeDocuments(ctx context.Context, cs ...<-chan document) <-chan document {
	var wg sync.WaitGroup
	out := make(chan document)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan document) {
			defer wg.Done()
			for d := range c {
				select {
				case out <- d:
				case <-ctx.Done():
				}
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and adds every document found in .fumen and .txt files,
// named after the file relative to path without its extension. Files with
// more than one document have #1, #2, ... appended to the name. Lines that
// fail to decode are logged and skipped.
func (l *Library) Scan(path string, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := l.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var docs []<-chan document
	for i := 0; i < workers; i++ {
		out, errc, err := l.decodeWorker(ctx, dir, files)
		if err != nil {
			return err
		}
		docs = append(docs, out)
		errcList = append(errcList, errc)
	}

	errc, err = l.storeWorker(mergeDocuments(ctx, docs...))
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(cancelFunc, errcList...)
}
